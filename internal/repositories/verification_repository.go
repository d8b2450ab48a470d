package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"jobboard/internal/models"
)

type VerificationRepository interface {
	// Replace removes any previous records for (email, purpose) and inserts
	// a fresh one in a single transaction, so at most one live record exists
	// per pair even under concurrent requests.
	Replace(email, code, purpose string, expiresAt time.Time) (*models.Verification, error)
	DeleteByPurpose(email, purpose string) error
	FindLiveUnverified(email, code, purpose string) (*models.Verification, error)
	FindLiveVerified(email, code, purpose string) (*models.Verification, error)
	MarkVerified(id int64) error
	Delete(id int64) error
}

type verificationRepository struct {
	DB *sql.DB
}

func NewVerificationRepository(db *sql.DB) VerificationRepository {
	return &verificationRepository{DB: db}
}

func (r *verificationRepository) Replace(email, code, purpose string, expiresAt time.Time) (*models.Verification, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("verification replace begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM verifications WHERE email = $1 AND purpose = $2`, email, purpose); err != nil {
		return nil, fmt.Errorf("verification replace delete: %w", err)
	}

	const q = `
		INSERT INTO verifications (email, code, purpose, expires_at, verified)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, created_at
	`
	v := &models.Verification{Email: email, Code: code, Purpose: purpose, ExpiresAt: expiresAt}
	if err := tx.QueryRow(q, email, code, purpose, expiresAt).Scan(&v.ID, &v.CreatedAt); err != nil {
		return nil, fmt.Errorf("verification replace insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("verification replace commit: %w", err)
	}
	return v, nil
}

func (r *verificationRepository) DeleteByPurpose(email, purpose string) error {
	if _, err := r.DB.Exec(`DELETE FROM verifications WHERE email = $1 AND purpose = $2`, email, purpose); err != nil {
		return fmt.Errorf("verification delete by purpose: %w", err)
	}
	return nil
}

func (r *verificationRepository) findLive(email, code, purpose string, verified bool) (*models.Verification, error) {
	const q = `
		SELECT id, email, code, purpose, expires_at, verified, created_at
		FROM verifications
		WHERE email = $1 AND code = $2 AND purpose = $3 AND verified = $4 AND expires_at > NOW()
	`
	row := r.DB.QueryRow(q, email, code, purpose, verified)
	var v models.Verification
	if err := row.Scan(&v.ID, &v.Email, &v.Code, &v.Purpose, &v.ExpiresAt, &v.Verified, &v.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("verification find live: %w", err)
	}
	return &v, nil
}

func (r *verificationRepository) FindLiveUnverified(email, code, purpose string) (*models.Verification, error) {
	return r.findLive(email, code, purpose, false)
}

func (r *verificationRepository) FindLiveVerified(email, code, purpose string) (*models.Verification, error) {
	return r.findLive(email, code, purpose, true)
}

func (r *verificationRepository) MarkVerified(id int64) error {
	if _, err := r.DB.Exec(`UPDATE verifications SET verified = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("verification mark verified: %w", err)
	}
	return nil
}

func (r *verificationRepository) Delete(id int64) error {
	if _, err := r.DB.Exec(`DELETE FROM verifications WHERE id = $1`, id); err != nil {
		return fmt.Errorf("verification delete: %w", err)
	}
	return nil
}
