package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/budget-buddy/backend/internal/auth"
	"github.com/budget-buddy/backend/internal/events"
	"github.com/budget-buddy/backend/internal/httputil"
	"github.com/budget-buddy/backend/internal/mail"
	"github.com/budget-buddy/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type SignupRequest struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Password      string          `json:"password"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by all three auth endpoints.
type AuthResponse struct {
	Message string            `json:"message,omitempty"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// Signup creates a new account and mails a verification code.
//
//	@Summary		Sign up
//	@Description	Registers a new user and sends a verification OTP to their email
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	AuthResponse
//	@Failure		400		{object}	httpMessage
//	@Failure		500		{object}	httpMessage
//	@Param			signup	body		SignupRequest	true	"Account"
//	@Router			/signup [post]
func (co Controller) Signup(c *gin.Context) {
	var data SignupRequest
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(http.StatusBadRequest, httpMessage{Message: err.Error()})
		return
	}

	if data.Name == "" || data.Email == "" || data.Password == "" {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errFieldsRequired.Error()})
		return
	}

	hash, err := auth.HashPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpMessage{Message: err.Error()})
		return
	}

	otp := auth.GenerateOTP(6)
	expiresAt := time.Now().Add(auth.OTPValidity)
	user := models.User{
		Name:          data.Name,
		Email:         data.Email,
		Password:      hash,
		MonthlyBudget: data.MonthlyBudget,
		OTP:           otp,
		OTPExpiresAt:  &expiresAt,
	}

	if err := co.DB.Create(&user).Error; err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	token, err := co.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpMessage{Message: err.Error()})
		return
	}

	co.Bus.Publish(events.TopicSendOTP, events.Message{
		TemplateID: mail.TemplateOTP,
		Email:      user.Email,
		TemplateData: map[string]string{
			"name": user.Name,
			"otp":  otp,
		},
	})

	c.JSON(http.StatusCreated, AuthResponse{
		Message: "Signup successful, please verify your email",
		Token:   token,
		User:    user.Public(),
	})
}

// VerifyOTP confirms the code sent at signup and activates the account.
//
//	@Summary		Verify OTP
//	@Description	Verifies the email of a freshly registered user
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	AuthResponse
//	@Failure		400		{object}	httpMessage
//	@Failure		500		{object}	httpMessage
//	@Param			verify	body		VerifyOTPRequest	true	"Email and OTP"
//	@Router			/verify-otp [post]
func (co Controller) VerifyOTP(c *gin.Context) {
	var data VerifyOTPRequest
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(http.StatusBadRequest, httpMessage{Message: err.Error()})
		return
	}

	var user models.User
	err := co.DB.Where(&models.User{Email: data.Email}).First(&user).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			c.JSON(http.StatusBadRequest, httpMessage{Message: errUserNotFound.Error()})
			return
		}

		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	// A cleared OTP never matches, so a second verification attempt
	// with the old code fails.
	if user.OTP == "" || user.OTP != data.OTP {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errInvalidOTP.Error()})
		return
	}

	user.IsVerified = true
	user.OTP = ""
	user.OTPExpiresAt = nil
	if err := co.DB.Save(&user).Error; err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	token, err := co.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpMessage{Message: err.Error()})
		return
	}

	co.Bus.Publish(events.TopicNotification, events.Message{
		TemplateID: mail.TemplateWelcome,
		Email:      user.Email,
		TemplateData: map[string]string{
			"name": user.Name,
		},
	})

	c.JSON(http.StatusOK, AuthResponse{
		Message: "Email verified successfully",
		Token:   token,
		User:    user.Public(),
	})
}

// Login authenticates a user by email and password.
//
//	@Summary		Log in
//	@Description	Returns a session token for valid credentials
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	AuthResponse
//	@Failure		400		{object}	httpMessage
//	@Failure		500		{object}	httpMessage
//	@Param			login	body		LoginRequest	true	"Credentials"
//	@Router			/login [post]
func (co Controller) Login(c *gin.Context) {
	var data LoginRequest
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(http.StatusBadRequest, httpMessage{Message: err.Error()})
		return
	}

	var user models.User
	err := co.DB.Where(&models.User{Email: data.Email}).First(&user).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			c.JSON(http.StatusBadRequest, httpMessage{Message: errInvalidEmail.Error()})
			return
		}

		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	if !auth.CheckPassword(user.Password, data.Password) {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errInvalidPasswd.Error()})
		return
	}

	token, err := co.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpMessage{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  user.Public(),
	})
}
