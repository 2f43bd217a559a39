package identity

import "context"

// AdminIdentity names the administrator behind a privileged call
type AdminIdentity struct {
	ID   string
	Name string
}

// AdminResolver is the session collaborator's currentAdmin capability.
// It returns nil without error when the credential does not belong to an administrator.
type AdminResolver interface {
	CurrentAdmin(ctx context.Context, credential string) (*AdminIdentity, error)
}
