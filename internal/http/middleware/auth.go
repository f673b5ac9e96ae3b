package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/waltz-backend/internal/platform/ctxutil"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

// AnonymousUser is the caller name used when no JWT secret is configured.
const AnonymousUser = "anonymous"

type AuthMiddleware struct {
	log    *logger.Logger
	secret []byte
}

// NewAuthMiddleware validates HS256 bearer tokens signed with secret. An
// empty secret turns validation off and every caller is AnonymousUser.
func NewAuthMiddleware(log *logger.Logger, secret string) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	if strings.TrimSpace(secret) == "" {
		middlewareLogger.Warn("JWT_SECRET_KEY not set; requests run as anonymous")
	}
	return &AuthMiddleware{log: middlewareLogger, secret: []byte(strings.TrimSpace(secret))}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(am.secret) == 0 {
			c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{Username: AnonymousUser}))
			c.Next()
			return
		}
		tokenString := extractBearer(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}
		rd, err := am.parse(tokenString)
		if err != nil {
			am.log.Debug("token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": err.Error(), "code": "unauthorized"},
			})
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

func (am *AuthMiddleware) parse(tokenString string) (*ctxutil.RequestData, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return am.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	sub, _ := claims.GetSubject()
	username := ""
	for _, key := range []string{"username", "preferred_username"} {
		if v, ok := claims[key].(string); ok && strings.TrimSpace(v) != "" {
			username = strings.TrimSpace(v)
			break
		}
	}
	if username == "" {
		username = strings.TrimSpace(sub)
	}
	if username == "" {
		return nil, errors.New("token carries no username")
	}
	return &ctxutil.RequestData{Username: username, Subject: sub}, nil
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
