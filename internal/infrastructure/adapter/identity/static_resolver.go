package identity

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/identity"
)

// StaticAdmin is one configured administrator credential
type StaticAdmin struct {
	ID    string
	Name  string
	Token string
}

// StaticResolver resolves bearer tokens against a fixed administrator list
type StaticResolver struct {
	admins []StaticAdmin
}

var _ identity.AdminResolver = (*StaticResolver)(nil)

// NewStaticResolver creates a resolver. Entries without a token are ignored.
func NewStaticResolver(admins []StaticAdmin) *StaticResolver {
	kept := make([]StaticAdmin, 0, len(admins))
	for _, a := range admins {
		if a.Token == "" {
			continue
		}
		if a.Name == "" {
			a.Name = a.ID
		}
		kept = append(kept, a)
	}
	return &StaticResolver{admins: kept}
}

// CurrentAdmin returns the administrator owning credential, or nil.
// The credential may carry a "Bearer " prefix.
func (r *StaticResolver) CurrentAdmin(_ context.Context, credential string) (*identity.AdminIdentity, error) {
	token := strings.TrimSpace(credential)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return nil, nil
	}

	var match *identity.AdminIdentity
	// Every entry is compared so the timing does not reveal which one matched.
	for _, a := range r.admins {
		if subtle.ConstantTimeCompare([]byte(a.Token), []byte(token)) == 1 && match == nil {
			match = &identity.AdminIdentity{ID: a.ID, Name: a.Name}
		}
	}
	return match, nil
}

// Len returns the number of usable credentials
func (r *StaticResolver) Len() int {
	return len(r.admins)
}
