package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/justsurfingit/superio-server/internal/apperr"
	"github.com/justsurfingit/superio-server/internal/auth"
	"github.com/justsurfingit/superio-server/internal/dtos"
	"github.com/justsurfingit/superio-server/internal/logger"
)

type AuthHandler struct {
	Tokens       *auth.TokenService
	CookieName   string
	CookieSecure bool
	Log          logger.Logger
}

func NewAuthHandler(tokens *auth.TokenService, cookieName string, cookieSecure bool, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		Tokens:       tokens,
		CookieName:   cookieName,
		CookieSecure: cookieSecure,
		Log:          log,
	}
}

// CreateToken is POST /createToken. Every field of the body becomes a claim;
// email is required.
func (h *AuthHandler) CreateToken(c *gin.Context) {
	var req dtos.TokenRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		apperr.Respond(c, bindFailure(err))
		return
	}
	payload := map[string]interface{}{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		apperr.Respond(c, bindFailure(err))
		return
	}

	token, err := h.Tokens.Issue(payload)
	if err != nil {
		fail(c, h.Log, err, nil)
		return
	}
	auth.SetTokenCookie(c, h.CookieName, token, int(h.Tokens.TTL().Seconds()), h.CookieSecure)
	h.Log.Debug("credential issued", map[string]interface{}{"email": req.Email})
	c.JSON(http.StatusOK, dtos.SuccessResponse{Success: true})
}

// Logout is POST /logout. Tokens are stateless, so this only clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	auth.ClearTokenCookie(c, h.CookieName, h.CookieSecure)
	c.JSON(http.StatusOK, dtos.SuccessResponse{Success: true})
}
