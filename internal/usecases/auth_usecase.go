package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"project_karcis/internal/entities"
	"project_karcis/internal/interfaces"
)

const bcryptCost = 10

var (
	ErrUserExists         = errors.New("user with this username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrOTPInvalid         = errors.New("otp code is invalid, expired, or already used")
)

type AuthUsecase struct {
	users  interfaces.UserStore
	tokens interfaces.TokenStore
	otps   interfaces.OTPStore
	mailer interfaces.Mailer
	signer *TokenSigner
	otpTTL time.Duration
}

func NewAuthUsecase(users interfaces.UserStore, tokens interfaces.TokenStore,
	otps interfaces.OTPStore, mailer interfaces.Mailer, signer *TokenSigner,
	otpTTL time.Duration) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		otps:   otps,
		mailer: mailer,
		signer: signer,
		otpTTL: otpTTL,
	}
}

// Register hashes the password and creates user, balance, and token row in a
// single store transaction. The plaintext password is never persisted.
func (uc *AuthUsecase) Register(ctx context.Context, user entities.User, password string) (entities.User, string, error) {
	existing, err := uc.users.FindByUsernameOrEmail(ctx, user.Username, user.Email)
	if err != nil {
		return entities.User{}, "", fmt.Errorf("find existing user: %w", err)
	}
	if existing != nil {
		return entities.User{}, "", ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return entities.User{}, "", fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	user.RoleID = entities.RoleUser

	created, token, err := uc.users.Register(ctx, user, uc.signer.Sign)
	if errors.Is(err, interfaces.ErrConflict) {
		// Lost the race against a concurrent registration
		return entities.User{}, "", ErrUserExists
	}
	return created, token, err
}

func (uc *AuthUsecase) Login(ctx context.Context, username, password string) (entities.User, string, error) {
	user, err := uc.users.FindBy(ctx, interfaces.LookupByUsername, username)
	if err != nil {
		return entities.User{}, "", fmt.Errorf("find user: %w", err)
	}
	if user == nil || !VerifyPassword(password, user.PasswordHash) {
		return entities.User{}, "", ErrInvalidCredentials
	}

	token, err := uc.signer.Sign(*user)
	if err != nil {
		return entities.User{}, "", err
	}
	if err := uc.tokens.Create(ctx, token); err != nil {
		return entities.User{}, "", fmt.Errorf("record token: %w", err)
	}
	return *user, token, nil
}

func (uc *AuthUsecase) Logout(ctx context.Context, token string) error {
	return uc.tokens.Revoke(ctx, token)
}

// ForgotPassword generates a one-time code, stores it with a short expiry, and
// mails it to the account's address.
func (uc *AuthUsecase) ForgotPassword(ctx context.Context, email string, renderMail func(code string) string) error {
	user, err := uc.users.FindBy(ctx, interfaces.LookupByEmail, email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	code := GenerateOTP()
	if err := uc.otps.Create(ctx, code, uc.otpTTL); err != nil {
		return fmt.Errorf("create otp: %w", err)
	}
	if err := uc.mailer.Send(ctx, *user, "Reset your password", renderMail(code)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// CheckOTP is a read-only probe; the code stays usable until reset consumes it.
func (uc *AuthUsecase) CheckOTP(ctx context.Context, code string) error {
	usable, err := uc.otps.IsUsable(ctx, code)
	if err != nil {
		return fmt.Errorf("check otp: %w", err)
	}
	if !usable {
		return ErrOTPInvalid
	}
	return nil
}

// ResetPassword consumes the code and replaces the password hash. A consumed
// code fails both this and CheckOTP afterwards.
func (uc *AuthUsecase) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	consumed, err := uc.otps.Consume(ctx, code)
	if err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	if !consumed {
		return ErrOTPInvalid
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := uc.users.UpdatePassword(ctx, email, string(hashed)); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// VerifyPassword compares a plaintext candidate against a stored bcrypt
// digest. A falsified or malformed hash yields false, never an error.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
