package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"jobboard/internal/authz"
	"jobboard/internal/models"
	"jobboard/internal/repositories"
)

var (
	ErrMissingFields        = errors.New("required fields missing")
	ErrEmailTaken           = errors.New("email already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrCodeInvalidOrExpired = errors.New("invalid or expired code")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters")
	ErrDeliveryFailed       = errors.New("failed to send verification email")
)

const defaultOTPTTL = 10 * time.Minute

// OTPService ведёт жизненный цикл кода по паре (email, purpose):
// NONE -> ISSUED -> (VERIFIED) -> CONSUMED, с ленивым истечением по TTL.
type OTPService interface {
	SendSignupOTP(email string) error
	VerifySignupOTP(firstName, lastName, email, password, otp string) (*models.User, string, error)
	SendLoginOTP(email string) error
	VerifyLoginOTP(email, otp string) (*models.User, string, error)
	SendForgotPasswordOTP(email string) error
	VerifyForgotPasswordOTP(email, otp string) error
	ResetPassword(email, otp, newPassword string) error
}

type otpService struct {
	verifRepo   repositories.VerificationRepository
	userRepo    repositories.UserRepository
	emails      EmailService
	auth        AuthService
	codeTTL     time.Duration
	superAdmins map[string]struct{}
}

// superAdminEmails — allowlist адресов, получающих роль superadmin при
// регистрации; нормализуется один раз здесь.
func NewOTPService(
	verifRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	emails EmailService,
	auth AuthService,
	codeTTL time.Duration,
	superAdminEmails []string,
) OTPService {
	if codeTTL <= 0 {
		codeTTL = defaultOTPTTL
	}
	allow := make(map[string]struct{}, len(superAdminEmails))
	for _, e := range superAdminEmails {
		allow[normalizeEmail(e)] = struct{}{}
	}
	return &otpService{
		verifRepo:   verifRepo,
		userRepo:    userRepo,
		emails:      emails,
		auth:        auth,
		codeTTL:     codeTTL,
		superAdmins: allow,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateCode — 6 десятичных цифр, равномерно из 100000..999999.
func (s *otpService) generateCode() string {
	return fmt.Sprintf("%d", rand.Intn(900000)+100000)
}

// sendOTP — общий путь выдачи кода: предусловие по пользователю, затем
// старая запись для (email, purpose) замещается новой одной транзакцией.
func (s *otpService) sendOTP(email, purpose string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrMissingFields
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	switch purpose {
	case models.PurposeSignup:
		if user != nil {
			return ErrEmailTaken
		}
	default:
		if user == nil {
			return ErrUserNotFound
		}
	}

	code := s.generateCode()
	expiresAt := time.Now().Add(s.codeTTL)
	if _, err := s.verifRepo.Replace(email, code, purpose, expiresAt); err != nil {
		return err
	}

	// Запись уже сохранена: при сбое доставки клиент повторит запрос, и
	// Replace вытеснит этот код.
	if err := s.emails.SendOTPEmail(email, code, purpose); err != nil {
		log.Printf("[otp][send] delivery failed: email=%s purpose=%s err=%v", email, purpose, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	log.Printf("[otp][send] ok: email=%s purpose=%s expires_at=%s", email, purpose, expiresAt.Format(time.RFC3339))
	return nil
}

func (s *otpService) SendSignupOTP(email string) error {
	return s.sendOTP(email, models.PurposeSignup)
}

func (s *otpService) SendLoginOTP(email string) error {
	return s.sendOTP(email, models.PurposeLogin)
}

func (s *otpService) SendForgotPasswordOTP(email string) error {
	return s.sendOTP(email, models.PurposeForgotPassword)
}

func (s *otpService) VerifySignupOTP(firstName, lastName, email, password, otp string) (*models.User, string, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = normalizeEmail(email)
	otp = strings.TrimSpace(otp)
	if firstName == "" || lastName == "" || email == "" || password == "" || otp == "" {
		return nil, "", ErrMissingFields
	}

	rec, err := s.verifRepo.FindLiveUnverified(email, otp, models.PurposeSignup)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "", ErrCodeInvalidOrExpired
	}

	// повторная проверка: между выдачей кода и подтверждением могла
	// завершиться другая регистрация
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	if err := s.verifRepo.MarkVerified(rec.ID); err != nil {
		return nil, "", err
	}

	role := authz.RoleUser
	if _, ok := s.superAdmins[email]; ok {
		role = authz.RoleSuperAdmin
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	if err := s.verifRepo.Delete(rec.ID); err != nil {
		return nil, "", err
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, "", err
	}
	user.LastLoginAt = &now

	token, err := s.auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	if err := s.emails.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
		// warn but do not fail signup
		log.Printf("[otp][signup] welcome email failed: email=%s err=%v", user.Email, err)
	}

	log.Printf("[otp][signup] ok: userID=%d role=%s", user.ID, user.Role)
	return user, token, nil
}

func (s *otpService) VerifyLoginOTP(email, otp string) (*models.User, string, error) {
	email = normalizeEmail(email)
	otp = strings.TrimSpace(otp)
	if email == "" || otp == "" {
		return nil, "", ErrMissingFields
	}

	rec, err := s.verifRepo.FindLiveUnverified(email, otp, models.PurposeLogin)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "", ErrCodeInvalidOrExpired
	}
	if err := s.verifRepo.MarkVerified(rec.ID); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, "", err
	}
	user.LastLoginAt = &now

	// код одноразовый для всех purpose, запись удаляется сразу
	if err := s.verifRepo.Delete(rec.ID); err != nil {
		return nil, "", err
	}

	token, err := s.auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	log.Printf("[otp][login] ok: userID=%d", user.ID)
	return user, token, nil
}

func (s *otpService) VerifyForgotPasswordOTP(email, otp string) error {
	email = normalizeEmail(email)
	otp = strings.TrimSpace(otp)
	if email == "" || otp == "" {
		return ErrMissingFields
	}

	rec, err := s.verifRepo.FindLiveUnverified(email, otp, models.PurposeForgotPassword)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrCodeInvalidOrExpired
	}
	// запись остаётся до ResetPassword: VERIFIED — разрешение на сброс
	if err := s.verifRepo.MarkVerified(rec.ID); err != nil {
		return err
	}

	log.Printf("[otp][forgot] verified: email=%s", email)
	return nil
}

func (s *otpService) ResetPassword(email, otp, newPassword string) error {
	email = normalizeEmail(email)
	otp = strings.TrimSpace(otp)
	newPassword = strings.TrimSpace(newPassword)
	if email == "" || otp == "" || newPassword == "" {
		return ErrMissingFields
	}
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	// только VERIFIED-запись: фаза verify обязана пройти раньше
	rec, err := s.verifRepo.FindLiveVerified(email, otp, models.PurposeForgotPassword)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrCodeInvalidOrExpired
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return err
	}

	if err := s.verifRepo.Delete(rec.ID); err != nil {
		return err
	}

	log.Printf("[otp][reset] ok: userID=%d", user.ID)
	return nil
}
