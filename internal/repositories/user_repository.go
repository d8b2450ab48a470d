package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"jobboard/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePassword(userID int, passwordHash string) error
	UpdateLastLogin(userID int, at time.Time) error
	Delete(id int) error
	List(limit, offset int) ([]*models.User, error)
	GetCount() (int, error)
	GetCountByRole(role string) (int, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (first_name, last_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var lastLogin sql.NullTime
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role, &lastLogin, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, password_hash, role, last_login_at, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, password_hash, role, last_login_at, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`
	return r.scanUser(r.DB.QueryRow(q, email))
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET first_name = $1, last_name = $2, role = $3
		WHERE id = $4
	`
	if _, err := r.DB.Exec(q, user.FirstName, user.LastName, user.Role, user.ID); err != nil {
		return fmt.Errorf("user update: %w", err)
	}
	return nil
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	if _, err := r.DB.Exec(`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID); err != nil {
		return fmt.Errorf("user update password: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(userID int, at time.Time) error {
	if _, err := r.DB.Exec(`UPDATE users SET last_login_at = $1 WHERE id = $2`, at, userID); err != nil {
		return fmt.Errorf("user update last login: %w", err)
	}
	return nil
}

func (r *userRepository) Delete(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("user delete: %w", err)
	}
	return nil
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, password_hash, role, last_login_at, created_at
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		var lastLogin sql.NullTime
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role, &lastLogin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("user list scan: %w", err)
		}
		if lastLogin.Valid {
			u.LastLoginAt = &lastLogin.Time
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) GetCount() (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c); err != nil {
		return 0, fmt.Errorf("user count: %w", err)
	}
	return c, nil
}

func (r *userRepository) GetCountByRole(role string) (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&c); err != nil {
		return 0, fmt.Errorf("user count by role: %w", err)
	}
	return c, nil
}
