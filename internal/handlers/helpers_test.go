package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-task-tracker/internal/constants"
	"github.com/yukikurage/team-task-tracker/internal/repository"
	"github.com/yukikurage/team-task-tracker/internal/services"
	"github.com/yukikurage/team-task-tracker/internal/testutil"
	"gorm.io/gorm"
)

const (
	testBoss     = "Shammi Kapoor"
	testPassword = "supersecret"
	futureDate   = "2099-12-31"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	svc    Services
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := Services{
		Auth:     services.NewAuthService(userRepo),
		Tasks:    services.NewTaskService(repository.NewTaskRepository(db), userRepo),
		Messages: services.NewMessageService(repository.NewMessageRepository(db)),
	}

	_, err := svc.Auth.EnsureSeedAccount(services.SeedAccount{Username: testBoss, Password: testPassword})
	require.NoError(t, err)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	RegisterRoutes(r, svc)

	return testEnv{db: db, router: r, svc: svc}
}

func (env testEnv) register(t *testing.T, username string) {
	t.Helper()
	_, err := env.svc.Auth.Register(services.RegisterInput{Username: username, Password: testPassword})
	require.NoError(t, err)
}

// login returns the session cookies for username
func (env testEnv) login(t *testing.T, username string) []*http.Cookie {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": testPassword,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func (env testEnv) do(t *testing.T, method, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
