package guard

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultCookieName is the cookie that carries the session credential.
const DefaultCookieName = "userhub.session_token"

// Cookies writes and clears the session cookie.
type Cookies struct {
	Name   string
	Secure bool
}

// NewCookies returns cookie settings using DefaultCookieName.
func NewCookies(secure bool) Cookies {
	return Cookies{Name: DefaultCookieName, Secure: secure}
}

// Set stores the credential in an HttpOnly cookie that expires with the session.
func (k Cookies) Set(c *gin.Context, credential string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		k.Clear(c)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(k.Name, credential, maxAge, "/", "", k.Secure, true)
}

// Clear expires the session cookie.
func (k Cookies) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(k.Name, "", -1, "/", "", k.Secure, true)
}
