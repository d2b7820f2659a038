// Package auth implements the token service and password hashing used by
// the guards and the ownership resolver.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/akulikov/boardd/internal/common"
)

// TokenType distinguishes the two JWT kinds. A token of one type never
// validates at an endpoint expecting the other.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Identity is the verified subject attached to a request by the guards.
// A nil *Identity means anonymous.
type Identity struct {
	UserID   int64
	Username string
	Role     string
}

// Claims is the JWT payload: registered claims plus the identity fields and
// the token type.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"accountId"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"type"`
}

// TokenService issues and verifies the access/refresh token pair. The two
// kinds are signed with independent secrets and carry independent
// lifetimes.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccess mints a short-lived access token for ident and returns it
// with its expiry timestamp.
func (s *TokenService) IssueAccess(ident Identity) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.accessTTL)
	token, err := s.sign(ident, TokenTypeAccess, s.accessSecret, expiresAt)
	return token, expiresAt, err
}

// IssueRefresh mints a long-lived refresh token for ident.
func (s *TokenService) IssueRefresh(ident Identity) (string, error) {
	token, err := s.sign(ident, TokenTypeRefresh, s.refreshSecret, time.Now().Add(s.refreshTTL))
	return token, err
}

// RefreshTTL returns the refresh token lifetime, used to scope the session
// cookie.
func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *TokenService) sign(ident Identity, kind TokenType, secret []byte, expiresAt time.Time) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:    ident.UserID,
		Username:  ident.Username,
		Role:      ident.Role,
		TokenType: string(kind),
	})
	return token.SignedString(secret)
}

// Verify checks signature and expiry of tokenString against the secret of
// the expected type and returns the embedded identity.
//
// Errors: common.ErrTokenExpired for elapsed tokens, common.ErrInvalidToken
// for bad signatures or malformed tokens, common.ErrTokenTypeMismatch when
// a well-formed token of the other kind is presented. All three are
// terminal for the request.
func (s *TokenService) Verify(tokenString string, expected TokenType) (*Identity, error) {
	secret := s.accessSecret
	if expected == TokenTypeRefresh {
		secret = s.refreshSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	// Backstop for deployments configured with identical secrets: the type
	// claim still has to match the use site.
	if TokenType(claims.TokenType) != expected {
		return nil, common.ErrTokenTypeMismatch
	}

	return &Identity{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}
