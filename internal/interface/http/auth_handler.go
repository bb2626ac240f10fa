package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nazarov/footballmanager/internal/application"
	"github.com/nazarov/footballmanager/pkg/response"
	"github.com/nazarov/footballmanager/pkg/validation"
)

// AuthHandler exposes the public registration and login endpoints.
type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`
	Email           string `json:"email" binding:"required,email,max=100"`
	Password        string `json:"password" binding:"required,pwd"`
	DateOfBirth     string `json:"date_of_birth" binding:"omitempty,dob"`
	PlayingPosition string `json:"playing_position" binding:"omitempty,max=100"`
	ContactNumber   string `json:"contact_number" binding:"omitempty,max=50"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		DateOfBirth:     req.DateOfBirth,
		PlayingPosition: req.PlayingPosition,
		ContactNumber:   req.ContactNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken),
			errors.Is(err, application.ErrInvalidDateOfBirth),
			errors.Is(err, application.ErrFutureDateOfBirth):
			response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, application.ErrRoleNotConfigured):
			// Same surface the original design chose: a client-visible not-found.
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("registration failed")
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}

	c.Header("Location", fmt.Sprintf("/api/users/%d", u.ID))
	response.Success(c, http.StatusCreated, gin.H{"user_id": u.ID}, "user registered successfully")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   exp,
	}, "login successful")
}
