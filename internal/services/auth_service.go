package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/team-task-tracker/internal/models"
	"github.com/yukikurage/team-task-tracker/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrUsernameRequired     = errors.New("username is required")
	ErrPasswordRequired     = errors.New("password is required")
	ErrUsernameTooLong      = errors.New("username must be at most 255 characters")
	ErrPasswordTooLong      = errors.New("password must be at most 72 bytes")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// AuthService handles the credential store: registration, login checks and user listings.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SeedAccount is the boss account that must exist on every start.
type SeedAccount struct {
	Username string
	Password string
}

// EnsureSeedAccount creates the seed boss unless an account with that username
// already exists. An existing account is never modified.
func (s *AuthService) EnsureSeedAccount(seed SeedAccount) (bool, error) {
	if err := validateCredentials(seed.Username, seed.Password); err != nil {
		return false, err
	}

	if _, err := s.userRepo.FindByUsername(seed.Username); err == nil {
		return false, nil
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return false, fmt.Errorf("failed to check seed account: %w", err)
	}

	hash, err := hashPassword(seed.Password)
	if err != nil {
		return false, err
	}

	created, err := s.userRepo.CreateIfAbsent(&models.User{
		Username:     seed.Username,
		PasswordHash: hash,
		Role:         models.RoleBoss,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create seed account: %w", err)
	}
	if created {
		log.WithField("username", seed.Username).Info("Seed boss account created")
	}
	return created, nil
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
}

// Register creates a member account. The username is stored exactly as given.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	if err := validateCredentials(input.Username, input.Password); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: hash,
		Role:         models.RoleMember,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate checks a username and password pair and returns the stored
// account on success. Unknown users and wrong passwords are indistinguishable:
// both return ok=false with no user. The error is set only when the store
// cannot be read. The match on username is exact even on engines whose
// collation compares case-insensitively.
func (s *AuthService) Authenticate(username, password string) (*models.User, bool, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}
	if user.Username != username {
		return nil, false, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, false, nil
	}

	return user, true, nil
}

// GetUser retrieves a user by username.
func (s *AuthService) GetUser(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ListUsers returns a snapshot of every account keyed by username.
func (s *AuthService) ListUsers() (map[string]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	byName := make(map[string]models.User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return byName, nil
}

// ListMembers returns the sorted usernames of every member account.
func (s *AuthService) ListMembers() ([]string, error) {
	users, err := s.ListUsers()
	if err != nil {
		return nil, err
	}

	members := make([]string, 0, len(users))
	for name, u := range users {
		if u.Role == models.RoleMember {
			members = append(members, name)
		}
	}
	sort.Strings(members)
	return members, nil
}

func validateCredentials(username, password string) error {
	switch {
	case strings.TrimSpace(username) == "":
		return ErrUsernameRequired
	case utf8.RuneCountInString(username) > models.MaxNameLength:
		return ErrUsernameTooLong
	case password == "":
		return ErrPasswordRequired
	case len(password) > maxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashPassword, err)
	}
	return string(hashed), nil
}
