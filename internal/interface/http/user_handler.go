package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nazarov/footballmanager/internal/application"
	"github.com/nazarov/footballmanager/internal/interface/middleware"
	"github.com/nazarov/footballmanager/pkg/response"
)

const maxPictureBytes = 5 << 20

// UserHandler exposes the authenticated profile endpoints. Every handler
// reads the verified subject the Bearer middleware injected; none of them
// re-parse the token or reach into shared state.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubjectKey)
	view, err := h.Svc.GetProfile(c.Request.Context(), subject)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrNoAuthenticatedUser):
			// Unreachable when the middleware chain is intact.
			h.Logger.Error("profile requested without verified subject")
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		default:
			h.Logger.WithError(err).Error("profile lookup failed")
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, view, "profile")
}

// UploadProfilePicture PUT /api/users/me/avatar (multipart field "file")
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubjectKey)

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file upload", nil)
		return
	}
	if fh.Size > maxPictureBytes {
		response.Error[any](c, http.StatusBadRequest, "file too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.Logger.WithError(err).Error("upload open failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadProfilePicture(c.Request.Context(), subject, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrStorageUnavailable):
			response.Error[any](c, http.StatusServiceUnavailable, "uploads unavailable", nil)
		default:
			h.Logger.WithError(err).Error("profile picture upload failed")
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile_picture_url": url}, "profile picture updated")
}

// Search GET /api/users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query parameter q", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.SearchPlayers(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("player search failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}
