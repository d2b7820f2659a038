package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	user, err := s.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

type sendActivationRequest struct {
	Email string `form:"email" binding:"required,email"`
}

func (s *Server) handleSendActivation(c *gin.Context) {
	var req sendActivationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	if err := s.auth.SendActivationEmail(c.Request.Context(), req.Email); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type activateRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

func (s *Server) handleActivate(c *gin.Context) {
	var req activateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	if err := s.auth.Activate(c.Request.Context(), req.Email, req.Code); err != nil {
		s.writeError(c, err)
		return
	}
	// any session started before activation is discarded
	s.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	AccessToken     string       `json:"accessToken"`
	AccessExpiresAt time.Time    `json:"accessExpiresAt"`
	User            userResponse `json:"user"`
}

// handleLogin performs the credential check and starts a session: the
// access token goes in the body, the refresh token in the HTTP-only
// cookie.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	user, pair, err := s.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, sessionResponse{
		AccessToken:     pair.AccessToken,
		AccessExpiresAt: pair.AccessExpiresAt,
		User:            toUserResponse(user),
	})
}

type refreshResponse struct {
	AccessToken     string    `json:"accessToken"`
	AccessExpiresAt time.Time `json:"accessExpiresAt"`
}

func (s *Server) handleRefresh(c *gin.Context) {
	access, expiresAt, err := s.auth.Refresh(c.Request.Context(), identity(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, refreshResponse{AccessToken: access, AccessExpiresAt: expiresAt})
}

// handleLogout only clears the cookie. Refresh tokens are stateless, so an
// already-issued token stays technically valid until expiry.
func (s *Server) handleLogout(c *gin.Context) {
	s.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}
