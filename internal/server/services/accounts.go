// Package services contains the account-service business logic: registration,
// login, OTP-based password recovery, and profile update.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/skycastlabs/accounts/internal/common"
	"github.com/skycastlabs/accounts/internal/dbx"
	"github.com/skycastlabs/accounts/internal/server/auth"
	"github.com/skycastlabs/accounts/internal/server/config"
	"github.com/skycastlabs/accounts/internal/server/mail"
	"github.com/skycastlabs/accounts/internal/server/models"
	"github.com/skycastlabs/accounts/internal/server/otp"
	"github.com/skycastlabs/accounts/internal/server/repositories/repomanager"
)

// Profile is the sanitized view of an account returned to callers. It never
// carries the password hash or a pending reset code.
type Profile struct {
	UserID      string
	Username    string
	Email       string
	PhoneNumber string
	Role        string
	Group       *string
}

// RegisterResult is the reduced payload returned after registration.
type RegisterResult struct {
	Username    string
	Email       string
	PhoneNumber string
}

// LoginResult bundles the account profile with a freshly minted bearer token.
type LoginResult struct {
	Profile
	AccessToken string
}

// AccountService orchestrates the credential store, the OTP generator, and
// the notifier. Multi-step mutations run inside a single transaction.
type AccountService struct {
	db                  *sql.DB
	repomanager         repomanager.RepositoryManager
	otp                 otp.Generator
	notifier            mail.Notifier
	jwtSecret           []byte
	accessTokenValidity time.Duration
	otpValidity         time.Duration
	baseURL             string
}

// NewAccountService constructs an AccountService from its collaborators and
// server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, gen otp.Generator, notifier mail.Notifier, cfg *config.Config) *AccountService {
	return &AccountService{
		db:                  db,
		repomanager:         m,
		otp:                 gen,
		notifier:            notifier,
		jwtSecret:           []byte(cfg.SecretKey),
		accessTokenValidity: cfg.AccessTokenValidity,
		otpValidity:         cfg.OTPValidity,
		baseURL:             cfg.BaseURL,
	}
}

func profileOf(u *models.User) Profile {
	return Profile{
		UserID:      u.ID,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Group:       u.GroupID,
	}
}

// Register creates a new account. A taken email yields
// common.ErrorAlreadyExists. For ADMIN accounts the admin-group marker is
// written in the same transaction as the insert. The welcome mail is sent
// after commit; its failure propagates even though the row already exists.
func (s *AccountService) Register(ctx context.Context, username, email, password, phoneNumber, role string) (*RegisterResult, error) {

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PhoneNumber:  phoneNumber,
		PasswordHash: hash,
		Role:         role,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Users(tx)

		created, err := repoTx.Create(ctx, user)
		if err != nil {
			return err
		}

		// admin accounts carry their own id as the group marker
		if created.IsAdmin() {
			if err := repoTx.SetGroup(ctx, created.ID, created.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	body, err := mail.WelcomeBody(user.Username, s.baseURL)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.Send(ctx, user.Email, mail.SubjectWelcome, body); err != nil {
		return nil, fmt.Errorf("error sending welcome mail: %w", err)
	}

	return &RegisterResult{Username: user.Username, Email: user.Email, PhoneNumber: user.PhoneNumber}, nil
}

// Login verifies email/password. An unknown email yields
// common.ErrorNotFound and a wrong password common.ErrorUnauthorized, so the
// two cases remain distinguishable to the caller. On success a bearer token
// is issued alongside the profile.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidity)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	return &LoginResult{Profile: profileOf(user), AccessToken: token}, nil
}

// RequestPasswordReset generates a fresh OTP for the account, stores it with
// its expiry, and mails it. A newer request overwrites any pending code;
// only the latest is valid.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error loading user: %w", err)
	}

	code, err := s.otp.Generate()
	if err != nil {
		return fmt.Errorf("error generating otp: %w", err)
	}

	if err := repo.SetResetOTP(ctx, user.ID, code, time.Now().Add(s.otpValidity)); err != nil {
		return fmt.Errorf("error storing otp: %w", err)
	}

	body, err := mail.ResetOTPBody(user.Username, code, s.baseURL)
	if err != nil {
		return err
	}
	if err := s.notifier.Send(ctx, user.Email, mail.SubjectResetOTP, body); err != nil {
		return fmt.Errorf("error sending otp mail: %w", err)
	}

	return nil
}

// VerifyAndResetPassword checks the submitted OTP against the stored one
// (exact, case-sensitive match, not yet expired) and replaces the password.
// Clearing the code and storing the new hash happen in one transaction.
func (s *AccountService) VerifyAndResetPassword(ctx context.Context, email, otpCode, newPassword string) error {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInvalidEmail
		}
		return fmt.Errorf("error loading user: %w", err)
	}

	if user.ResetOTP == nil || *user.ResetOTP != otpCode {
		return common.ErrorInvalidOTP
	}
	if user.ResetOTPUntil != nil && time.Now().After(*user.ResetOTPUntil) {
		return common.ErrorInvalidOTP
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Users(tx)
		if err := repoTx.ClearResetOTP(ctx, user.ID); err != nil {
			return err
		}
		return repoTx.UpdatePassword(ctx, user.ID, hash)
	})
	if err != nil {
		return fmt.Errorf("error resetting password: %w", err)
	}

	body, err := mail.ResetConfirmedBody(user.Username, s.baseURL)
	if err != nil {
		return err
	}
	if err := s.notifier.Send(ctx, user.Email, mail.SubjectResetConfirmed, body); err != nil {
		return fmt.Errorf("error sending confirmation mail: %w", err)
	}

	return nil
}

// UpdateProfile overwrites username, email, and phone number. Password and
// role are never touched regardless of the payload. The returned profile is
// redacted like every other response.
func (s *AccountService) UpdateProfile(ctx context.Context, userID, username, email, phoneNumber string) (*Profile, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.UpdateProfile(ctx, userID, username, email, phoneNumber)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	body, err := mail.ProfileUpdatedBody(user.Username, s.baseURL)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.Send(ctx, user.Email, mail.SubjectProfileUpdated, body); err != nil {
		return nil, fmt.Errorf("error sending profile mail: %w", err)
	}

	p := profileOf(user)
	return &p, nil
}
