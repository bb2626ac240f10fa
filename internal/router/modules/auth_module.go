package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nazarov/footballmanager/internal/interface/http"
)

// AuthModule registers the public, unauthenticated endpoints:
// POST /api/auth/register and POST /api/auth/login.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)
}
