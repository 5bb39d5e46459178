package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/port"
)

var _ port.UsersRepository = (*UsersRepository)(nil)

type UsersRepository struct {
	sqldb sqldb
}

func NewUsersRepository(sqldb sqldb) UsersRepository {
	return UsersRepository{sqldb}
}

func (r UsersRepository) UserByEmail(
	ctx context.Context, email string,
) (domain.User, error) {
	const op = "UsersRepository.UserByEmail"

	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, email, first_name, last_name, role, password_hash, created_at
		FROM users
		WHERE email = $1;`

	var u domain.User
	var passwordHash sql.NullString
	err := r.sqldb.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName,
		&u.Role, &passwordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, fmt.Errorf(
				"%s: %w", op, domain.ErrUserNotFound,
			)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	u.PasswordHash = passwordHash.String

	return u, nil
}

func (r UsersRepository) SaveUser(ctx context.Context, u domain.User) error {
	const op = "UsersRepository.SaveUser"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO users (id, email, first_name, last_name, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7);`

	_, err := r.sqldb.ExecContext(ctx, query,
		u.ID, u.Email, u.FirstName, u.LastName,
		u.Role, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}

	return nil
}
