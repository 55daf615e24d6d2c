package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/scribeworks/transcriber-api/internal/models"
	apperrors "github.com/scribeworks/transcriber-api/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized is returned when a token is missing, malformed, or expired
var ErrUnauthorized = apperrors.New(apperrors.ErrCodeUnauthorized, "invalid or expired token")

// Claims carries the identity embedded in issued tokens
type Claims struct {
	UserID uint        `json:"uid"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Config holds token issuance settings
type Config struct {
	JWTSecret   string
	TokenTTL    time.Duration
	Issuer      string
	MinPassword int
}

// Service issues and validates bearer tokens backed by a user store
type Service struct {
	repo UserRepository
	cfg  Config
	now  func() time.Time
}

// NewService creates a new auth service
func NewService(repo UserRepository, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.MinPassword <= 0 {
		cfg.MinPassword = 6
	}
	return &Service{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

// Register creates a new account and returns a freshly issued token
func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", apperrors.ValidationError("email", "must be a valid email address")
	}
	if len(password) < s.cfg.MinPassword {
		return "", apperrors.Newf(apperrors.ErrCodeValidation,
			"password must be at least %d characters long", s.cfg.MinPassword)
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", apperrors.DatabaseError("lookup", err)
	}
	if existing != nil {
		return "", apperrors.New(apperrors.ErrCodeAlreadyExists, "email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", apperrors.DatabaseError("create", err)
	}

	return s.GenerateToken(user)
}

// Login verifies credentials and returns a token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", apperrors.DatabaseError("lookup", err)
	}
	if user == nil {
		return "", apperrors.New(apperrors.ErrCodeUnauthorized, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.New(apperrors.ErrCodeUnauthorized, "invalid email or password")
	}

	return s.GenerateToken(user)
}

// GenerateToken signs a new HS256 token for the given user
func (s *Service) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to sign token")
	}
	return signed, nil
}

// ValidateToken parses and verifies a bearer token, returning its claims
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	return claims, nil
}
