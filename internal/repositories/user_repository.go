package repositories

import (
	"database/sql"
	"errors"

	intconfig "eliteroadways/internal/config"
	"eliteroadways/internal/domain"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) Create(u *domain.User) error {
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, password_hash, role)
		VALUES (?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, u.Role,
	)
	if err != nil {
		return domain.UnavailableError{Msg: "insert user", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	u.ID = id
	return nil
}

func (r UserRepository) GetByEmail(email string) (domain.User, error) {
	var u domain.User
	err := r.db().QueryRow(`
		SELECT id, name, email, password_hash, role
		FROM users WHERE email = ? LIMIT 1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return domain.User{}, domain.UnavailableError{Msg: "query user", Err: err}
	}
	return u, nil
}

func (r UserRepository) EmailExists(email string) (bool, error) {
	var count int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count); err != nil {
		return false, domain.UnavailableError{Msg: "check user", Err: err}
	}
	return count > 0, nil
}
