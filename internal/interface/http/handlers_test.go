package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazarov/footballmanager/internal/application"
	"github.com/nazarov/footballmanager/internal/domain/entity"
	handlers "github.com/nazarov/footballmanager/internal/interface/http"
	"github.com/nazarov/footballmanager/internal/interface/middleware"
	"github.com/nazarov/footballmanager/pkg/helpers"
	"github.com/nazarov/footballmanager/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	m.Run()
}

// memUserRepo is an in-memory UserRepository for end-to-end handler tests.
type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]*entity.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}, nextID: 1}
}

func (r *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[email]
	return ok, nil
}

func (r *memUserRepo) UpdateProfilePicture(ctx context.Context, id int64, url string) error {
	return nil
}

type memRoleRepo struct{}

func (memRoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	if name == application.DefaultUserRole {
		return &entity.Role{ID: 1, Name: name}, nil
	}
	return nil, nil
}

type envelope struct {
	Status  int            `json:"status"`
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   any            `json:"error"`
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	jwt := helpers.NewJWTManager("test-signing-key", time.Hour)
	users := newMemUserRepo()

	authSvc := application.NewAuthService(users, memRoleRepo{}, helpers.BcryptHasher{}, jwt, nil)
	userSvc := application.NewUserService(users, nil, nil)

	authH := handlers.NewAuthHandler(authSvc, helpers.NewLogger("test", "production"))
	userH := handlers.NewUserHandler(userSvc, helpers.NewLogger("test", "production"))

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	protected := api.Group("/users")
	protected.Use(middleware.BearerAuth(jwt, nil))
	protected.GET("/me", userH.Me)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func getMe(t *testing.T, r *gin.Engine, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestRegisterLoginProfile_Flow(t *testing.T) {
	r := newTestServer(t)

	// Register
	rec, env := postJSON(t, r, "/api/auth/register", gin.H{
		"name":     "Ann",
		"email":    "ann@x.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "/api/users/1", rec.Header().Get("Location"))

	// Login
	rec, env = postJSON(t, r, "/api/auth/login", gin.H{
		"email":    "ann@x.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := env.Data["access_token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "Bearer", env.Data["token_type"])

	// Profile
	rec, env = getMe(t, r, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ann@x.com", env.Data["email"])
	assert.Equal(t, "Ann", env.Data["name"])
	assert.ElementsMatch(t, []any{"ROLE_USER"}, env.Data["roles"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newTestServer(t)
	payload := gin.H{"name": "Ann", "email": "ann@x.com", "password": "password123"}

	rec, _ := postJSON(t, r, "/api/auth/register", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := postJSON(t, r, "/api/auth/register", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "email address already in use", env.Message)
}

func TestRegister_ValidationDetails(t *testing.T) {
	r := newTestServer(t)

	rec, env := postJSON(t, r, "/api/auth/register", gin.H{
		"name":          "A",
		"email":         "not-an-email",
		"password":      "short",
		"date_of_birth": "01-01-1999",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	details, ok := env.Error.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "date_of_birth")
}

func TestLogin_BadCredentialsAreUniform(t *testing.T) {
	r := newTestServer(t)
	rec, _ := postJSON(t, r, "/api/auth/register", gin.H{
		"name": "Ann", "email": "ann@x.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec1, env1 := postJSON(t, r, "/api/auth/login", gin.H{"email": "ghost@x.com", "password": "password123"})
	rec2, env2 := postJSON(t, r, "/api/auth/login", gin.H{"email": "ann@x.com", "password": "wrong-password"})

	assert.Equal(t, http.StatusUnauthorized, rec1.Code)
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
	assert.Equal(t, env1.Message, env2.Message)
}

func TestProfile_GarbageTokenNeverReachesHandler(t *testing.T) {
	r := newTestServer(t)

	rec, env := getMe(t, r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", env.Message)
}

func TestProfile_MissingToken(t *testing.T) {
	r := newTestServer(t)

	rec, _ := getMe(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
