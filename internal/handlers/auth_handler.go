package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobboard/internal/models"
	"jobboard/internal/services"
)

type AuthHandler struct {
	otpService  services.OTPService
	userService services.UserService
	authService services.AuthService
}

func NewAuthHandler(otpService services.OTPService, userService services.UserService, authService services.AuthService) *AuthHandler {
	return &AuthHandler{otpService: otpService, userService: userService, authService: authService}
}

// otpError маппит ошибки OTP-сервиса на HTTP-статусы.
func otpError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrCodeInvalidOrExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDeliveryFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send verification email, please retry"})
	default:
		log.Printf("[auth] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type emailRequest struct {
	Email string `json:"email" binding:"required"`
}

// @Summary      Send signup OTP
// @Description  Emails a one-time code to a not-yet-registered address
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      emailRequest  true  "Email"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /auth/signup/send-otp [post]
func (h *AuthHandler) SendSignupOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.otpService.SendSignupOTP(req.Email); err != nil {
		otpError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification code sent"})
}

type verifySignupRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	OTP       string `json:"otp" binding:"required"`
}

// @Summary      Verify signup OTP
// @Description  Completes registration: checks the code, creates the account and returns a session token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      verifySignupRequest  true  "Signup data"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /auth/signup/verify [post]
func (h *AuthHandler) VerifySignupOTP(c *gin.Context) {
	var req verifySignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, token, err := h.otpService.VerifySignupOTP(req.FirstName, req.LastName, req.Email, req.Password, req.OTP)
	if err != nil {
		otpError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Registration complete",
		"user":    user, // PasswordHash помечен json:"-"
		"token":   token,
	})
}

// @Summary      Send login OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      emailRequest  true  "Email"
// @Success      200      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]string
// @Router       /auth/login/send-otp [post]
func (h *AuthHandler) SendLoginOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.otpService.SendLoginOTP(req.Email); err != nil {
		otpError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login code sent"})
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// @Summary      Verify login OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      verifyOTPRequest  true  "Email and code"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Router       /auth/login/verify [post]
func (h *AuthHandler) VerifyLoginOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, token, err := h.otpService.VerifyLoginOTP(req.Email, req.OTP)
	if err != nil {
		otpError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// @Summary      Send forgot-password OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      emailRequest  true  "Email"
// @Success      200      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]string
// @Router       /auth/forgot-password/send-otp [post]
func (h *AuthHandler) SendForgotPasswordOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.otpService.SendForgotPasswordOTP(req.Email); err != nil {
		otpError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset code sent"})
}

// @Summary      Verify forgot-password OTP
// @Description  Phase B of the reset flow: authorizes the subsequent reset call, issues no session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      verifyOTPRequest  true  "Email and code"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Router       /auth/forgot-password/verify [post]
func (h *AuthHandler) VerifyForgotPasswordOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.otpService.VerifyForgotPasswordOTP(req.Email, req.OTP); err != nil {
		otpError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Code verified, you can reset the password now"})
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// @Summary      Reset password
// @Description  Phase C: requires a previously verified forgot-password code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      resetPasswordRequest  true  "Email, code and new password"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.otpService.ResetPassword(req.Email, req.OTP, req.NewPassword); err != nil {
		otpError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated"})
}

// @Summary      Password login
// @Description  Classic email+password login, kept alongside the OTP flow
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login] bad request: bind json failed: err=%v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)

	user, err := h.userService.GetUserByEmail(email)
	if err != nil || user == nil {
		log.Printf("[auth][login] user not found by email=%q: err=%v", email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := h.authService.CheckPassword(user.PasswordHash, strings.TrimSpace(req.Password)); err != nil {
		log.Printf("[auth][login] password mismatch for userID=%d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Role)
	if err != nil {
		log.Printf("[auth][login] sign token failed for userID=%d: err=%v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	log.Printf("[auth][login] success userID=%d role=%s", user.ID, user.Role)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}
