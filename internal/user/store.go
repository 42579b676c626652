package user

import "context"

// Store provides user record lookup and mutation. Lookups return
// (nil, nil) when no record matches; errors are reserved for
// infrastructure failures.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Insert(ctx context.Context, u User) (*User, error)
	Update(ctx context.Context, id string, fields Update) (*User, error)
}
