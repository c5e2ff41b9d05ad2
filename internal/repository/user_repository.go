package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gabrielAlencar33564/weather/internal/model"
	"github.com/gabrielAlencar33564/weather/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,email,password_hash,role,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// Create inserts a user and returns its ID.  The email is normalized and
// the unique constraint doubles as the last line of defense against a
// duplicate signup racing past the existence check in the handler.
func (r *UserRepo) Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)",
		name, email, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns a page of users ordered by id together with the total
// row count for the pagination envelope.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]model.User, 0, limit)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UserUpdate carries the optional fields of a profile update.  Nil means
// "leave unchanged".
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// Update applies a partial profile update.  When the email changes it is
// checked against other accounts first; a new password is re-hashed.
// Returns the updated user or ErrNotFound / ErrEmailExists.
func (r *UserRepo) Update(ctx context.Context, id uint64, upd UserUpdate, cost int) (model.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		other, err := r.GetByEmail(ctx, email)
		if err == nil && other.ID != id {
			return model.User{}, ErrEmailExists
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			return model.User{}, err
		}
		u.Email = email
	}
	if upd.Name != nil {
		u.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Password != nil {
		hash, err := utils.HashPassword(*upd.Password, cost)
		if err != nil {
			return model.User{}, err
		}
		u.PasswordHash = hash
	}

	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, email=?, password_hash=? WHERE id=?",
		u.Name, u.Email, u.PasswordHash, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user by id, reporting ErrNotFound for unknown ids.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureAdmin creates the bootstrap administrator account if no user
// with the configured admin email exists yet.  Idempotent; called once
// during process initialization.
func (r *UserRepo) EnsureAdmin(ctx context.Context, name, email, password string, cost int) error {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	_, err = r.Create(ctx, name, email, password, model.RoleAdmin, cost)
	if errors.Is(err, ErrEmailExists) {
		// someone else created it between the check and the insert
		return nil
	}
	return err
}
