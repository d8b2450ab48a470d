package services

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/authz"
	"jobboard/internal/models"
)

// --- фейки ---

type fakeVerificationRepo struct {
	records []*models.Verification
	nextID  int64
}

func (f *fakeVerificationRepo) Replace(email, code, purpose string, expiresAt time.Time) (*models.Verification, error) {
	_ = f.DeleteByPurpose(email, purpose)
	f.nextID++
	v := &models.Verification{
		ID:        f.nextID,
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	f.records = append(f.records, v)
	return v, nil
}

func (f *fakeVerificationRepo) DeleteByPurpose(email, purpose string) error {
	kept := f.records[:0]
	for _, v := range f.records {
		if !(v.Email == email && v.Purpose == purpose) {
			kept = append(kept, v)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeVerificationRepo) findLive(email, code, purpose string, verified bool) (*models.Verification, error) {
	now := time.Now()
	for _, v := range f.records {
		if v.Email == email && v.Code == code && v.Purpose == purpose && v.Verified == verified && v.ExpiresAt.After(now) {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeVerificationRepo) FindLiveUnverified(email, code, purpose string) (*models.Verification, error) {
	return f.findLive(email, code, purpose, false)
}

func (f *fakeVerificationRepo) FindLiveVerified(email, code, purpose string) (*models.Verification, error) {
	return f.findLive(email, code, purpose, true)
}

func (f *fakeVerificationRepo) MarkVerified(id int64) error {
	for _, v := range f.records {
		if v.ID == id {
			v.Verified = true
			return nil
		}
	}
	return errors.New("record not found")
}

func (f *fakeVerificationRepo) Delete(id int64) error {
	kept := f.records[:0]
	for _, v := range f.records {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeVerificationRepo) byPurpose(email, purpose string) *models.Verification {
	for _, v := range f.records {
		if v.Email == email && v.Purpose == purpose {
			return v
		}
	}
	return nil
}

type fakeUserRepo struct {
	users  map[string]*models.User // по нормализованному email
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id int) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(user *models.User) error { return nil }

func (f *fakeUserRepo) UpdatePassword(userID int, passwordHash string) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return errors.New("user not found")
}

func (f *fakeUserRepo) UpdateLastLogin(userID int, at time.Time) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.LastLoginAt = &at
			return nil
		}
	}
	return errors.New("user not found")
}

func (f *fakeUserRepo) Delete(id int) error                     { return nil }
func (f *fakeUserRepo) List(_, _ int) ([]*models.User, error)   { return nil, nil }
func (f *fakeUserRepo) GetCount() (int, error)                  { return len(f.users), nil }
func (f *fakeUserRepo) GetCountByRole(role string) (int, error) { return 0, nil }

type fakeEmailService struct {
	sent     []string // коды в порядке отправки
	lastTo   string
	failNext bool
}

func (f *fakeEmailService) SendOTPEmail(email, code, purpose string) error {
	if f.failNext {
		return errors.New("smtp connection refused")
	}
	f.sent = append(f.sent, code)
	f.lastTo = email
	return nil
}

func (f *fakeEmailService) SendWelcomeEmail(email, firstName string) error { return nil }

func (f *fakeEmailService) lastCode() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

type otpEnv struct {
	verifs *fakeVerificationRepo
	users  *fakeUserRepo
	emails *fakeEmailService
	auth   AuthService
	svc    OTPService
}

func newOTPEnv(t *testing.T, superAdmins ...string) *otpEnv {
	t.Helper()
	env := &otpEnv{
		verifs: &fakeVerificationRepo{},
		users:  newFakeUserRepo(),
		emails: &fakeEmailService{},
		auth:   NewAuthService("test-secret", 15*time.Minute),
	}
	env.svc = NewOTPService(env.verifs, env.users, env.emails, env.auth, 10*time.Minute, superAdmins)
	return env
}

func (e *otpEnv) registeredUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := e.auth.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{FirstName: "Jane", LastName: "Doe", Email: email, PasswordHash: hash, Role: authz.RoleUser}
	require.NoError(t, e.users.Create(u))
	return u
}

// --- генератор кода ---

func TestGenerateCode_SixDigitsInRange(t *testing.T) {
	s := &otpService{}
	for i := 0; i < 1000; i++ {
		code := s.generateCode()
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

// --- выдача кода ---

func TestSendSignupOTP_CreatesRecordAndSendsEmail(t *testing.T) {
	env := newOTPEnv(t)

	require.NoError(t, env.svc.SendSignupOTP("new@x.com"))

	rec := env.verifs.byPurpose("new@x.com", models.PurposeSignup)
	require.NotNil(t, rec)
	assert.False(t, rec.Verified)
	assert.Equal(t, env.emails.lastCode(), rec.Code)
	assert.Equal(t, "new@x.com", env.emails.lastTo)
	assert.True(t, rec.ExpiresAt.After(time.Now()))
}

func TestSendSignupOTP_EmailTaken(t *testing.T) {
	env := newOTPEnv(t)
	env.registeredUser(t, "existing@x.com", "password1")

	err := env.svc.SendSignupOTP("existing@x.com")
	require.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, env.verifs.byPurpose("existing@x.com", models.PurposeSignup))
	assert.Empty(t, env.emails.sent)
}

func TestSendLoginOTP_UnknownEmail(t *testing.T) {
	env := newOTPEnv(t)

	err := env.svc.SendLoginOTP("ghost@x.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendOTP_MissingEmail(t *testing.T) {
	env := newOTPEnv(t)

	require.ErrorIs(t, env.svc.SendSignupOTP("   "), ErrMissingFields)
}

func TestSendOTP_DeliveryFailureKeepsRecord(t *testing.T) {
	env := newOTPEnv(t)
	env.emails.failNext = true

	err := env.svc.SendSignupOTP("new@x.com")
	require.ErrorIs(t, err, ErrDeliveryFailed)
	// запись уже сохранена: повторный запрос её вытеснит
	assert.NotNil(t, env.verifs.byPurpose("new@x.com", models.PurposeSignup))
}

func TestSendOTP_SecondRequestSupersedesFirst(t *testing.T) {
	env := newOTPEnv(t)

	require.NoError(t, env.svc.SendSignupOTP("new@x.com"))
	firstCode := env.emails.lastCode()

	require.NoError(t, env.svc.SendSignupOTP("new@x.com"))
	secondCode := env.emails.lastCode()

	_, _, err := env.svc.VerifySignupOTP("Jane", "Doe", "new@x.com", "password1", firstCode)
	if firstCode != secondCode {
		require.ErrorIs(t, err, ErrCodeInvalidOrExpired)
	}

	user, token, err := env.svc.VerifySignupOTP("Jane", "Doe", "new@x.com", "password1", secondCode)
	require.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEmpty(t, token)
}

// --- регистрация ---

func TestVerifySignupOTP_Success(t *testing.T) {
	env := newOTPEnv(t)
	require.NoError(t, env.svc.SendSignupOTP("new@x.com"))
	code := env.emails.lastCode()

	user, token, err := env.svc.VerifySignupOTP("Jane", "Doe", "new@x.com", "password1", code)
	require.NoError(t, err)

	assert.Equal(t, authz.RoleUser, user.Role)
	assert.Equal(t, "new@x.com", user.Email)
	assert.NotEmpty(t, token)
	require.NotNil(t, user.LastLoginAt)
	assert.NoError(t, env.auth.CheckPassword(user.PasswordHash, "password1"))

	// запись потреблена
	assert.Nil(t, env.verifs.byPurpose("new@x.com", models.PurposeSignup))

	// повторное подтверждение тем же кодом невозможно
	_, _, err = env.svc.VerifySignupOTP("Jane", "Doe", "new@x.com", "password1", code)
	require.ErrorIs(t, err, ErrCodeInvalidOrExpired)
}

func TestVerifySignupOTP_CaseInsensitiveEmail(t *testing.T) {
	env := newOTPEnv(t)
	require.NoError(t, env.svc.SendSignupOTP("User@Example.com"))
	code := env.emails.lastCode()

	user, _, err := env.svc.VerifySignupOTP("Jane", "Doe", "user@example.com", "password1", code)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestVerifySignupOTP_ExpiredCode(t *testing.T) {
	env := newOTPEnv(t)
	require.NoError(t, env.svc.SendSignupOTP("new@x.com"))
	code := env.emails.lastCode()

	rec := env.verifs.byPurpose("new@x.com", models.PurposeSignup)
	rec.ExpiresAt = time.Now().Add(-time.Millisecond)

	_, _, err := env.svc.VerifySignupOTP("Jane", "Doe", "new@x.com", "password1", code)
	require.ErrorIs(t, err, ErrCodeInvalidOrExpired)
}

func TestVerifySignupOTP_MissingFields(t *testing.T) {
	env := newOTPEnv(t)

	_, _, err := env.svc.VerifySignupOTP("", "Doe", "new@x.com", "password1", "123456")
	require.ErrorIs(t, err, ErrMissingFields)
}

func TestVerifySignupOTP_RaceWithCompletedSignup(t *testing.T) {
	env := newOTPEnv(t)
	require.NoError(t, env.svc.SendSignupOTP("new@x.com"))
	code := env.emails.lastCode()

	// другая регистрация успела завершиться между выдачей и подтверждением
	env.registeredUser(t, "new@x.com", "password1")

	_, _, err := env.svc.VerifySignupOTP("Jane", "Doe", "new@x.com", "password1", code)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestVerifySignupOTP_SuperAdminAllowlist(t *testing.T) {
	env := newOTPEnv(t, "Boss@Example.COM")
	require.NoError(t, env.svc.SendSignupOTP("boss@example.com"))
	code := env.emails.lastCode()

	user, _, err := env.svc.VerifySignupOTP("Big", "Boss", "boss@example.com", "password1", code)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleSuperAdmin, user.Role)
}

// --- вход ---

func TestVerifyLoginOTP_SuccessAndSingleUse(t *testing.T) {
	env := newOTPEnv(t)
	registered := env.registeredUser(t, "u@x.com", "password1")

	require.NoError(t, env.svc.SendLoginOTP("u@x.com"))
	code := env.emails.lastCode()

	user, token, err := env.svc.VerifyLoginOTP("u@x.com", code)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
	require.NotNil(t, user.LastLoginAt)

	// записи больше нет — код одноразовый
	_, _, err = env.svc.VerifyLoginOTP("u@x.com", code)
	require.ErrorIs(t, err, ErrCodeInvalidOrExpired)
}

func TestVerifyLoginOTP_WrongCode(t *testing.T) {
	env := newOTPEnv(t)
	env.registeredUser(t, "u@x.com", "password1")
	require.NoError(t, env.svc.SendLoginOTP("u@x.com"))

	_, _, err := env.svc.VerifyLoginOTP("u@x.com", "000000")
	require.ErrorIs(t, err, ErrCodeInvalidOrExpired)
}

// --- восстановление пароля ---

func TestForgotPasswordFlow(t *testing.T) {
	env := newOTPEnv(t)
	user := env.registeredUser(t, "u@x.com", "oldpassword")

	// фаза A
	require.NoError(t, env.svc.SendForgotPasswordOTP("u@x.com"))
	code := env.emails.lastCode()

	// фаза B
	require.NoError(t, env.svc.VerifyForgotPasswordOTP("u@x.com", code))
	rec := env.verifs.byPurpose("u@x.com", models.PurposeForgotPassword)
	require.NotNil(t, rec)
	assert.True(t, rec.Verified)

	// фаза C
	require.NoError(t, env.svc.ResetPassword("u@x.com", code, "newpassword"))
	assert.NoError(t, env.auth.CheckPassword(user.PasswordHash, "newpassword"))
	assert.Error(t, env.auth.CheckPassword(user.PasswordHash, "oldpassword"))

	// запись потреблена, повтор невозможен
	require.ErrorIs(t, env.svc.ResetPassword("u@x.com", code, "anotherpass"), ErrCodeInvalidOrExpired)
}

func TestResetPassword_RequiresVerifyPhase(t *testing.T) {
	env := newOTPEnv(t)
	env.registeredUser(t, "u@x.com", "oldpassword")

	require.NoError(t, env.svc.SendForgotPasswordOTP("u@x.com"))
	code := env.emails.lastCode()

	// фаза B пропущена: запись ещё не verified
	require.ErrorIs(t, env.svc.ResetPassword("u@x.com", code, "newpassword"), ErrCodeInvalidOrExpired)
}

func TestResetPassword_TooShort(t *testing.T) {
	env := newOTPEnv(t)
	user := env.registeredUser(t, "u@x.com", "oldpassword")
	oldHash := user.PasswordHash

	require.NoError(t, env.svc.SendForgotPasswordOTP("u@x.com"))
	code := env.emails.lastCode()
	require.NoError(t, env.svc.VerifyForgotPasswordOTP("u@x.com", code))

	require.ErrorIs(t, env.svc.ResetPassword("u@x.com", code, "12345"), ErrPasswordTooShort)
	assert.Equal(t, oldHash, user.PasswordHash)
}

func TestVerifyForgotPasswordOTP_WrongCode(t *testing.T) {
	env := newOTPEnv(t)
	env.registeredUser(t, "u@x.com", "password1")
	require.NoError(t, env.svc.SendForgotPasswordOTP("u@x.com"))

	require.ErrorIs(t, env.svc.VerifyForgotPasswordOTP("u@x.com", "999999"), ErrCodeInvalidOrExpired)
}

// независимые записи по purpose для одного email
func TestPurposesAreIndependent(t *testing.T) {
	env := newOTPEnv(t)
	env.registeredUser(t, "u@x.com", "password1")

	require.NoError(t, env.svc.SendLoginOTP("u@x.com"))
	loginCode := env.emails.lastCode()
	require.NoError(t, env.svc.SendForgotPasswordOTP("u@x.com"))

	// запрос forgot-password не вытеснил login-код
	user, _, err := env.svc.VerifyLoginOTP("u@x.com", loginCode)
	require.NoError(t, err)
	assert.NotNil(t, user)
}
