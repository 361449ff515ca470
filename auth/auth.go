package auth

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/JalilAbdallah/hrm-backend/config"
	"github.com/JalilAbdallah/hrm-backend/models"
	"github.com/JalilAbdallah/hrm-backend/repository"
)

// Claims is the verified token payload surfaced to handlers.
type Claims struct {
	ID     string
	UserID string
	Role   string
}

// Service issues and verifies HS256 tokens against the users collection.
type Service struct {
	users       *repository.UserRepository
	secret      []byte
	expireHours int
}

func NewService(users *repository.UserRepository, cfg config.AuthConfig) *Service {
	return &Service{
		users:       users,
		secret:      []byte(cfg.Secret),
		expireHours: cfg.ExpireHours,
	}
}

// Login authenticates by email/password and returns a signed token plus the
// public user fields. Credential failures come back as ErrInvalidCredentials
// so the handler can answer 401 without leaking which part was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*models.LoginResp, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	return &models.LoginResp{
		Message: "Login successful",
		Token:   token,
		User: models.LoginUser{
			ID:       user.ID.Hex(),
			UserID:   user.UserID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

func (s *Service) issue(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":      user.ID.Hex(),
		"user_id": user.UserID,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(s.expireHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string (with or without the
// "Bearer " prefix) and returns its claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		log.Printf("auth: token rejected: %v", err)
		return nil, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	c := &Claims{}
	c.ID, _ = mc["id"].(string)
	c.UserID, _ = mc["user_id"].(string)
	c.Role, _ = mc["role"].(string)
	if c.Role == "" {
		return nil, ErrInvalidToken
	}
	return c, nil
}

// HashPassword is used by account seeding tooling.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
