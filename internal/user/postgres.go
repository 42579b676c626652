package user

import (
	"context"
	"database/sql"

	"gatekeeper/internal/db"
)

// PostgresStore implements Store against the users table.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `
	id, name, email, password_hash, salt, role, email_verified,
	created_at, updated_at
`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Salt,
		&u.Role,
		&u.EmailVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)
	return scanUser(row)
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (s *PostgresStore) Insert(ctx context.Context, u User) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash, salt, role, email_verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns+`
	`, u.Name, u.Email, u.PasswordHash, u.Salt, u.Role, u.EmailVerified)
	return scanUser(row)
}

func (s *PostgresStore) Update(ctx context.Context, id string, fields Update) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE users SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			password_hash = COALESCE($4, password_hash),
			salt = COALESCE($5, salt),
			email_verified = COALESCE($6, email_verified),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns+`
	`, id, fields.Name, fields.Email, fields.PasswordHash, fields.Salt, fields.EmailVerified)
	return scanUser(row)
}
