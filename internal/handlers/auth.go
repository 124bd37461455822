package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/team-task-tracker/internal/constants"
	"github.com/yukikurage/team-task-tracker/internal/dto"
	apierrors "github.com/yukikurage/team-task-tracker/internal/errors"
	"github.com/yukikurage/team-task-tracker/internal/middleware"
	"github.com/yukikurage/team-task-tracker/internal/models"
	"github.com/yukikurage/team-task-tracker/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers a new member.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Username        string `json:"username" binding:"required,max=255"`
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirm_password"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		apierrors.BadRequest(c, "Passwords do not match")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, "signup", err)
		return
	}

	log.WithField("username", user.Username).Info("user registered")
	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required,max=255"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, ok, err := h.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(c, "login", err)
		return
	}
	if !ok {
		apierrors.InvalidCredentials(c)
		return
	}

	session := sessions.Default(c)
	// Store the account's own spelling of the username
	session.Set(constants.SessionKeyUsername, user.Username)
	session.Set(constants.SessionKeyRole, string(user.Role))
	if err := session.Save(); err != nil {
		log.WithError(err).Error("failed to save session")
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(username)
	if err != nil {
		respondError(c, "get current user", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ListMembers returns the member usernames offered by the assignee picker.
func (h *AuthHandler) ListMembers(c *gin.Context) {
	members, err := h.authService.ListMembers()
	if err != nil {
		respondError(c, "list members", err)
		return
	}

	users := make([]dto.UserDTO, len(members))
	for i, name := range members {
		users[i] = dto.UserDTO{Username: name, Role: models.RoleMember}
	}
	c.JSON(http.StatusOK, gin.H{"members": users})
}
