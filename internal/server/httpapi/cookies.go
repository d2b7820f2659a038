package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// setRefreshCookie stores the refresh token in an HTTP-only session cookie
// scoped to the whole site. The cookie lives exactly as long as the token.
func (s *Server) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.config.RefreshCookieName, token, int(s.tokens.RefreshTTL().Seconds()), "/", "", false, true)
}

// clearRefreshCookie drops the session cookie. The token itself stays valid
// until it expires; there is no server-side revocation.
func (s *Server) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.config.RefreshCookieName, "", -1, "/", "", false, true)
}
