package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skycastlabs/accounts/internal/common"
)

// Request bodies. Field names follow what the mobile app already sends.

type createRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyRequest struct {
	OTP      string `json:"otp" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type profileUpdateRequest struct {
	UserID      string `json:"userId"`
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
}

// internalError logs the cause and answers with a generic message. Details
// never reach the response body.
func (s *Server) internalError(c *gin.Context, msg string, err error) {
	s.logger.Error(c.Request.Context(), msg, "error", err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"message": msg})
}

func (s *Server) handleCreate(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.accounts.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.PhoneNumber, req.Role)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusForbidden, "User already exists")
			return
		}
		s.internalError(c, "Failed to register user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":    res.Username,
		"email":       res.Email,
		"phoneNumber": res.PhoneNumber,
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, "User not found")
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusUnauthorized, "Invalid Password")
		default:
			s.internalError(c, "Failed to authenticate user", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":      res.UserID,
		"username":    res.Username,
		"email":       res.Email,
		"phoneNumber": res.PhoneNumber,
		"role":        res.Role,
		"group":       res.Group,
		"accessToken": res.AccessToken,
	})
}

func (s *Server) handleForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.accounts.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, "User not found")
			return
		}
		s.internalError(c, "Failed to send OTP for password reset", err)
		return
	}

	c.JSON(http.StatusOK, "OTP sent to your email account for password reset")
}

func (s *Server) handleVerifyAndReset(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.accounts.VerifyAndResetPassword(c.Request.Context(), req.Email, req.OTP, req.Password); err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidEmail):
			c.JSON(http.StatusBadRequest, "Invalid email")
		case errors.Is(err, common.ErrorInvalidOTP):
			c.JSON(http.StatusBadRequest, "Invalid OTP")
		default:
			s.internalError(c, "Failed to verify email and OTP or update password", err)
		}
		return
	}

	c.JSON(http.StatusOK, "Password updated successfully")
}

func (s *Server) handleProfileUpdate(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// the bearer token decides whose profile is updated
	userID := c.GetString(ctxUserID)
	if req.UserID != "" && req.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token does not match user"})
		return
	}

	p, err := s.accounts.UpdateProfile(c.Request.Context(), userID, req.Username, req.Email, req.PhoneNumber)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, "Illegal request")
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusForbidden, "User already exists")
		default:
			s.internalError(c, "Failed to update user profile", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":      p.UserID,
		"username":    p.Username,
		"email":       p.Email,
		"phoneNumber": p.PhoneNumber,
		"role":        p.Role,
		"group":       p.Group,
	})
}
