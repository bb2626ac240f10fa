package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nazarov/footballmanager/pkg/helpers"
	"github.com/nazarov/footballmanager/pkg/response"
)

// CtxSubjectKey holds the verified token subject (account email) for handlers.
const CtxSubjectKey = "subject"

// BearerAuth verifies the Authorization: Bearer token and injects its subject
// into the Gin context. Every failure mode (missing header, malformed token,
// bad signature, expiry) is logged with its reason but answered with the same
// generic 401 so callers cannot probe which check failed.
func BearerAuth(jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			unauthorized(c, logger, "missing bearer token", nil)
			return
		}
		subject, err := jwt.ParseToken(token)
		if err != nil {
			unauthorized(c, logger, "token verification failed", err)
			return
		}
		c.Set(CtxSubjectKey, subject)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c *gin.Context, logger *logrus.Logger, reason string, err error) {
	if logger != nil {
		entry := logger.WithField("path", c.FullPath())
		if err != nil {
			entry = entry.WithError(err)
		}
		entry.Debug(reason)
	}
	response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
	c.Abort()
}
