package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akulikov/boardd/internal/common"
	"github.com/akulikov/boardd/internal/server/auth"
)

const identityKey = "identity"

// AccessGuard verifies a bearer access token when one is presented. A
// missing Authorization header is not an error: the request continues as
// anonymous and the ownership layer decides what anonymous callers may do.
// A header that is present but does not verify aborts with 401.
func (s *Server) AccessGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			s.abortWithError(c, common.ErrInvalidToken)
			return
		}

		ident, err := s.tokens.Verify(parts[1], auth.TokenTypeAccess)
		if err != nil {
			s.abortWithError(c, err)
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests. It runs after AccessGuard on
// routes that only make sense with an account.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity(c) == nil {
			s.abortWithError(c, common.ErrorUnauthorized)
			return
		}
		c.Next()
	}
}

// RefreshGuard requires a valid refresh token in the session cookie. Unlike
// the access guard there is no anonymous fallback: refresh is meaningless
// without a session.
func (s *Server) RefreshGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(s.config.RefreshCookieName)
		if err != nil || token == "" {
			s.abortWithError(c, common.ErrorUnauthorized)
			return
		}

		ident, err := s.tokens.Verify(token, auth.TokenTypeRefresh)
		if err != nil {
			s.abortWithError(c, err)
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// identity returns the verified caller or nil for anonymous requests.
func identity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, ok := v.(*auth.Identity)
	if !ok {
		return nil
	}
	return ident
}
