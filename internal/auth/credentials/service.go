package credentials

import (
	"context"
	"errors"

	"github.com/samber/oops"

	"gatekeeper/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("account already exists")
)

// Service owns the credential lifecycle: registration, authentication,
// and password replacement. It is the only writer of hash/salt pairs.
type Service struct {
	users user.Store
}

func NewService(users user.Store) *Service {
	return &Service{users: users}
}

// Register creates a user with a fresh salt and derived hash.
// Returns ErrAlreadyRegistered when the email is taken.
func (s *Service) Register(ctx context.Context, name, email, password string) (*user.User, error) {

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, oops.Code("CREDENTIALS_LOOKUP_FAILED").Wrap(err)
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	salt, err := GenerateSalt()
	if err != nil {
		return nil, oops.Code("CREDENTIALS_SALT_FAILED").Wrap(err)
	}

	hash, err := HashPassword(password, salt)
	if err != nil {
		return nil, oops.Code("CREDENTIALS_HASH_FAILED").Wrap(err)
	}

	created, err := s.users.Insert(ctx, user.User{
		Name:          name,
		Email:         email,
		PasswordHash:  hash,
		Salt:          salt,
		Role:          "user",
		EmailVerified: false,
	})
	if err != nil {
		return nil, oops.Code("CREDENTIALS_INSERT_FAILED").Wrap(err)
	}

	return created, nil
}

// Authenticate verifies an email/password pair. Unknown email and wrong
// password both return ErrInvalidCredentials; callers must not be able to
// tell which factor failed.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*user.User, error) {

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, oops.Code("CREDENTIALS_LOOKUP_FAILED").Wrap(err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if !VerifyPassword(password, u.PasswordHash, u.Salt) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// SetPassword replaces a user's credentials with a fresh salt and hash.
// Salts are never reused across password changes.
func (s *Service) SetPassword(ctx context.Context, userID, password string) error {

	salt, err := GenerateSalt()
	if err != nil {
		return oops.Code("CREDENTIALS_SALT_FAILED").Wrap(err)
	}

	hash, err := HashPassword(password, salt)
	if err != nil {
		return oops.Code("CREDENTIALS_HASH_FAILED").Wrap(err)
	}

	if _, err := s.users.Update(ctx, userID, user.Update{
		PasswordHash: &hash,
		Salt:         &salt,
	}); err != nil {
		return oops.Code("CREDENTIALS_UPDATE_FAILED").Wrap(err)
	}

	return nil
}
