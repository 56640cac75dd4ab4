package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/superio-server/internal/apperr"
	"github.com/justsurfingit/superio-server/internal/logger"
)

const claimsKey = "auth.claims"

// RequireToken is the auth gate: it reads the credential cookie, verifies it
// and stores the claims on the context. Missing or invalid credentials stop
// the chain with 401.
func RequireToken(tokens *TokenService, cookieName string, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			apperr.Respond(c, apperr.NewUnauthorized("missing token cookie"))
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			log.Warn("rejected credential", map[string]interface{}{
				"path":  c.FullPath(),
				"error": err,
			})
			apperr.Respond(c, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// MatchQueryEmail rejects with 403 when an email query parameter is present
// and differs from the credential's email. Must run after RequireToken.
func MatchQueryEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			apperr.Respond(c, apperr.NewUnauthorized("no verified credential"))
			return
		}
		if email, present := c.GetQuery("email"); present && email != claims.Email {
			apperr.Respond(c, apperr.NewForbidden("query email does not match credential"))
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireToken.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// CallerEmail is the verified identity used for ownership checks.
func CallerEmail(c *gin.Context) string {
	if claims, ok := ClaimsFrom(c); ok {
		return claims.Email
	}
	return ""
}

// SetTokenCookie stores token as an HttpOnly cookie that lives as long as the token.
func SetTokenCookie(c *gin.Context, name, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, token, maxAge, "/", "", secure, true)
}

// ClearTokenCookie expires the credential cookie on the client.
func ClearTokenCookie(c *gin.Context, name string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", secure, true)
}
