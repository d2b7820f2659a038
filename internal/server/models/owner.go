package models

// Owner identifies who controls a mutable resource: either a registered
// member (by account id) or an anonymous author protected by a secret
// hashed at creation time. Exactly one of the two variants is set; the
// constructors make the invariant unrepresentable to break.
type Owner struct {
	member     bool
	memberID   int64
	secretHash string
}

// MemberOwner returns an Owner bound to a registered account.
func MemberOwner(accountID int64) Owner {
	return Owner{member: true, memberID: accountID}
}

// AnonymousOwner returns an Owner protected by the given secret hash.
func AnonymousOwner(secretHash string) Owner {
	return Owner{secretHash: secretHash}
}

// Member returns the owning account id and true for member-owned resources.
func (o Owner) Member() (int64, bool) {
	return o.memberID, o.member
}

// SecretHash returns the stored secret digest and true for anonymous-owned
// resources.
func (o Owner) SecretHash() (string, bool) {
	if o.member {
		return "", false
	}
	return o.secretHash, true
}
