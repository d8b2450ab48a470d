package repositories

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/models"
)

func TestVerificationRepository_Replace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVerificationRepository(db)
	expiresAt := time.Now().Add(10 * time.Minute)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM verifications WHERE email = $1 AND purpose = $2`)).
		WithArgs("u@x.com", models.PurposeSignup).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO verifications (email, code, purpose, expires_at, verified)`)).
		WithArgs("u@x.com", "123456", models.PurposeSignup, expiresAt).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), time.Now()))
	mock.ExpectCommit()

	v, err := repo.Replace("u@x.com", "123456", models.PurposeSignup, expiresAt)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.ID)
	assert.Equal(t, "u@x.com", v.Email)
	assert.Equal(t, "123456", v.Code)
	assert.False(t, v.Verified)
	assert.Equal(t, expiresAt, v.ExpiresAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationRepository_Replace_RollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVerificationRepository(db)
	expiresAt := time.Now().Add(10 * time.Minute)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM verifications WHERE email = $1 AND purpose = $2`)).
		WithArgs("u@x.com", models.PurposeLogin).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO verifications`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err = repo.Replace("u@x.com", "123456", models.PurposeLogin, expiresAt)
	require.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationRepository_FindLiveUnverified(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVerificationRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "email", "code", "purpose", "expires_at", "verified", "created_at"}).
		AddRow(int64(3), "u@x.com", "654321", models.PurposeForgotPassword, now.Add(5*time.Minute), false, now)
	mock.ExpectQuery(`SELECT id, email, code, purpose, expires_at, verified, created_at`).
		WithArgs("u@x.com", "654321", models.PurposeForgotPassword, false).
		WillReturnRows(rows)

	v, err := repo.FindLiveUnverified("u@x.com", "654321", models.PurposeForgotPassword)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, int64(3), v.ID)
	assert.Equal(t, "654321", v.Code)
	assert.False(t, v.Verified)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationRepository_FindLiveVerified_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVerificationRepository(db)

	mock.ExpectQuery(`SELECT id, email, code, purpose, expires_at, verified, created_at`).
		WithArgs("u@x.com", "000000", models.PurposeForgotPassword, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "code", "purpose", "expires_at", "verified", "created_at"}))

	v, err := repo.FindLiveVerified("u@x.com", "000000", models.PurposeForgotPassword)
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationRepository_MarkVerified(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVerificationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE verifications SET verified = TRUE WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkVerified(3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVerificationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM verifications WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationRepository_DeleteByPurpose_Idempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVerificationRepository(db)

	// нет строк — всё равно успех
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM verifications WHERE email = $1 AND purpose = $2`)).
		WithArgs("nobody@x.com", models.PurposeSignup).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteByPurpose("nobody@x.com", models.PurposeSignup))
	assert.NoError(t, mock.ExpectationsWereMet())
}
