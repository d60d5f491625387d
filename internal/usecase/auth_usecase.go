package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthUsecase は会員登録とログインを扱う。
// カートの持ち主解決（OwnerKey）に使うuser_idはここで発行したJWTから取る。
type AuthUsecase struct {
	userRepo   repo.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	bcryptCost int
}

func NewAuthUsecase(userRepo repo.UserRepository, jwtSecret string) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  15 * time.Minute,
		bcryptCost: 12,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthOutput struct {
	UserID      int64     `json:"user_id"`
	Email       string    `json:"email"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	if _, err := u.userRepo.FindByEmail(ctx, email); err == nil {
		return AuthOutput{}, NewHTTPError(http.StatusConflict, "email already registered")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	now := time.Now()
	created, err := u.userRepo.Create(ctx, model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.issue(created)
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := u.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !user.IsActive {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := u.userRepo.UpdateLastLoginAt(ctx, user.ID); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.issue(user)
}

// HS256のアクセストークンを発行する。
func (u *AuthUsecase) issue(user model.User) (AuthOutput, error) {
	now := time.Now()
	expiresAt := now.Add(u.accessTTL)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(u.jwtSecret)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return AuthOutput{
		UserID:      user.ID,
		Email:       user.Email,
		AccessToken: signed,
		ExpiresAt:   expiresAt,
	}, nil
}
