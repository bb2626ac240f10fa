package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazarov/footballmanager/internal/interface/middleware"
	"github.com/nazarov/footballmanager/pkg/helpers"
)

func setupEngine(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.BearerAuth(jwt, nil), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.CtxSubjectKey))
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBearerAuth_ValidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-signing-key", time.Hour)
	token, _, err := jwt.GenerateToken("ann@x.com")
	require.NoError(t, err)

	rec := doGet(setupEngine(jwt), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ann@x.com", rec.Body.String())
}

func TestBearerAuth_Rejections(t *testing.T) {
	jwt := helpers.NewJWTManager("test-signing-key", time.Hour)
	expired := helpers.NewJWTManager("test-signing-key", -time.Minute)
	expiredToken, _, err := expired.GenerateToken("ann@x.com")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer garbage"},
		{"expired token", "Bearer " + expiredToken},
		{"empty bearer", "Bearer "},
	}

	r := setupEngine(jwt)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doGet(r, tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			// Uniform body: the reason must not be disclosed.
			assert.Contains(t, rec.Body.String(), "unauthorized")
		})
	}
}
