package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tickets-webapp/database"
	"tickets-webapp/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	Token string         `json:"token"`
	User  model.UserData `json:"user"`
}

type AccountService struct {
	users      UserStore
	signingKey []byte
	tokenTTL   time.Duration
	bcryptCost int
	logger     *zerolog.Logger
	now        func() time.Time
}

func NewAccountService(users UserStore, signingKey string, tokenTTL time.Duration, logger *zerolog.Logger) *AccountService {
	return &AccountService{
		users:      users,
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (AuthResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	switch {
	case req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "":
		return AuthResult{}, fmt.Errorf("%w: all fields are required", ErrInvalidAccount)
	case !emailPattern.MatchString(req.Email):
		return AuthResult{}, fmt.Errorf("%w: invalid email address", ErrInvalidAccount)
	case !phonePattern.MatchString(req.Phone):
		return AuthResult{}, fmt.Errorf("%w: phone must be 10 digits", ErrInvalidAccount)
	case len(req.Password) < minPasswordLength:
		return AuthResult{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidAccount, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Insert(ctx, model.UserData{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		HashedPassword: string(hash),
		Role:           model.RoleUser,
		CreatedAt:      s.now().UTC(),
	})
	if errors.Is(err, database.ErrDuplicate) {
		return AuthResult{}, ErrAccountExists
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Info().Str("userId", user.Id.Hex()).Msg("account registered")
	return s.issue(user)
}

func (s *AccountService) Login(ctx context.Context, req LoginRequest) (AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, database.ErrNotFound) {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if !isPasswordHashCorrect(user.HashedPassword, req.Password) {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AccountService) issue(user model.UserData) (AuthResult, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.Id.Hex(),
		"email":  user.Email,
		"role":   user.Role,
		"exp":    s.now().Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}

	return AuthResult{Token: signed, User: user}, nil
}

func isPasswordHashCorrect(dbHash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(dbHash), []byte(pass))
	return err == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
