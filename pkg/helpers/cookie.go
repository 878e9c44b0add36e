package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const sessionCookie = "token"

// CookieManager is the write-only response sink for session cookies.
type CookieManager struct {
	Domain string
	Secure bool
}

func NewCookieManager(domain string, secure bool) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure}
}

// SetSession writes the http-only session cookie, valid until exp.
func (m *CookieManager) SetSession(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

// ClearSession expires the session cookie.
func (m *CookieManager) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", m.Domain, m.Secure, true)
}

// Session reads the raw session token from the request, if present.
func Session(c *gin.Context) (string, bool) {
	tok, err := c.Cookie(sessionCookie)
	if err != nil || tok == "" {
		return "", false
	}
	return tok, true
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
