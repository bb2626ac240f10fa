package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/nazarov/footballmanager/internal/container"
	handlers "github.com/nazarov/footballmanager/internal/interface/http"
	"github.com/nazarov/footballmanager/internal/interface/middleware"
	"github.com/nazarov/footballmanager/pkg/helpers"
)

// UserModule registers the authenticated profile endpoints behind the Bearer
// middleware: GET /api/users/me, PUT /api/users/me/avatar, GET /api/users/search.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.BearerAuth(m.JWT, container.GetLogger()))
	{
		auth.GET("/me", m.Handler.Me)
		auth.PUT("/me/avatar", m.Handler.UploadProfilePicture)
		auth.GET("/search", m.Handler.Search)
	}
}
