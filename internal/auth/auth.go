package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"intranet/internal/domain/employees"
)

var ErrInvalidCredentials = errors.New("auth: invalid credentials")

const TokenTTL = 12 * time.Hour

type Claims struct {
	Email   string `json:"email"`
	Role    string `json:"rol"`
	IsAdmin bool   `json:"esAdmin"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func GenerateToken(secret string, employeeID, email, role string, isAdmin bool, ttl time.Duration) (string, error) {
	claims := Claims{
		Email:   email,
		Role:    role,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   employeeID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// CredentialStore is the slice of the employee store Login needs.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (employees.Employee, error)
	PasswordHash(ctx context.Context, id string) (string, error)
}

type Service struct {
	store  CredentialStore
	secret string
}

func NewService(store CredentialStore, secret string) *Service {
	return &Service{store: store, secret: secret}
}

type Session struct {
	Token    string             `json:"token"`
	Employee employees.Employee `json:"empleado"`
}

// Login verifies the password of an active employee and issues a token.
// Unknown email, wrong password and deactivated account all map to the
// same error.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	emp, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}
	if !emp.Active {
		return Session{}, ErrInvalidCredentials
	}

	hash, err := s.store.PasswordHash(ctx, emp.ID)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}
	if err := CheckPassword(hash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.secret, emp.ID, emp.Email, emp.Role, emp.IsAdmin, TokenTTL)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, Employee: emp}, nil
}
