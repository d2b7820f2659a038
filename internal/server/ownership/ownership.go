// Package ownership holds the single authorization decision shared by every
// mutable resource type on the board. Posts and comments both route their
// mutate/delete checks through Authorize; the logic exists exactly once.
package ownership

import (
	"github.com/akulikov/boardd/internal/common"
	"github.com/akulikov/boardd/internal/server/auth"
	"github.com/akulikov/boardd/internal/server/models"
)

// Action is what the caller intends to do with the resource.
type Action int

const (
	Read Action = iota
	Mutate
	Delete
)

// Authorize decides whether ident (nil for anonymous) may perform action on
// a resource controlled by owner. suppliedSecret is only consulted for
// anonymous-owned resources; member-owned resources are never unlockable by
// secret.
//
// Denials are always common.ErrPermissionDenied, regardless of which branch
// failed, so callers cannot probe a resource's ownership mode through error
// messages.
func Authorize(owner models.Owner, ident *auth.Identity, suppliedSecret string, action Action) error {
	if action == Read {
		return nil
	}

	if accountID, ok := owner.Member(); ok {
		if ident == nil || ident.UserID != accountID {
			return common.ErrPermissionDenied
		}
		return nil
	}

	secretHash, _ := owner.SecretHash()
	if suppliedSecret == "" || !auth.VerifyPassword(suppliedSecret, secretHash) {
		return common.ErrPermissionDenied
	}
	return nil
}
