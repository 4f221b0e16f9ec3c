package auth

import "context"

// Repo defines persistence operations for user credentials. Username
// uniqueness is enforced at the store boundary; Create reports a violation
// as ErrDuplicateUser.
type Repo interface {
	Create(ctx context.Context, username, passwordHash string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
