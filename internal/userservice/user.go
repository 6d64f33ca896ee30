package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sushihentaime/pressroom/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
)

const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User

	err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.Password.hash, &u.Role, &u.CreatedDate)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func duplicateError(err error) error {
	switch {
	case common.UniqueViolation(err, usernameConstraint):
		return ErrDuplicateUsername
	case common.UniqueViolation(err, emailConstraint):
		return ErrDuplicateEmail
	default:
		return err
	}
}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, username, first_name, last_name, email, password, role, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	args := []any{
		u.ID,
		u.Username,
		u.FirstName,
		u.LastName,
		u.Email,
		u.Password.hash,
		u.Role,
		u.CreatedDate,
	}

	_, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return duplicateError(err)
	}

	return nil
}

func (m *DBModel) getUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT id, username, first_name, last_name, email, password, role, created_date
		FROM users
		WHERE id = $1`

	u, err := scanUser(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return u, nil
}

func (m *DBModel) getUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, first_name, last_name, email, password, role, created_date
		FROM users
		WHERE username = $1`

	u, err := scanUser(m.db.QueryRowContext(ctx, query, username))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return u, nil
}

func (m *DBModel) getUsers(ctx context.Context) ([]*User, error) {
	query := `
		SELECT id, username, first_name, last_name, email, password, role, created_date
		FROM users
		ORDER BY created_date ASC, username ASC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// updateUser writes the profile fields and role. The password and created date are never touched.
func (m *DBModel) updateUser(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET username = $1, first_name = $2, last_name = $3, email = $4, role = $5
		WHERE id = $6`

	res, err := m.db.ExecContext(ctx, query, u.Username, u.FirstName, u.LastName, u.Email, u.Role, u.ID)
	if err != nil {
		return duplicateError(err)
	}

	return checkAffected(res)
}

func (m *DBModel) updateRole(ctx context.Context, id uuid.UUID, role Role) error {
	query := `
		UPDATE users
		SET role = $1
		WHERE id = $2`

	res, err := m.db.ExecContext(ctx, query, role, id)
	if err != nil {
		return err
	}

	return checkAffected(res)
}

func (m *DBModel) deleteUser(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM users
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return errors.New("too many rows affected")
		}
	}

	return nil
}
