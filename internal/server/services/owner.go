package services

import (
	"github.com/akulikov/boardd/internal/common"
	"github.com/akulikov/boardd/internal/server/auth"
	"github.com/akulikov/boardd/internal/server/models"
)

// resolveOwner picks the ownership mode from the caller's identity, for
// posts and comments alike. The returned display name is the username for
// members and the free-text name for anonymous authors.
func resolveOwner(hasher *auth.PasswordHasher, ident *auth.Identity, displayName, secret string) (models.Owner, string, error) {
	if ident != nil {
		return models.MemberOwner(ident.UserID), ident.Username, nil
	}
	if displayName == "" || secret == "" {
		return models.Owner{}, "", common.ErrorUnauthorized
	}
	hash, err := hasher.Hash(secret)
	if err != nil {
		return models.Owner{}, "", common.ErrorInternal
	}
	return models.AnonymousOwner(hash), displayName, nil
}
