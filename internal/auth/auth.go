package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetActor(staffID int64) (*Actor, error)
}

type RepositoryAPI interface {
	GetPasswordForEmail(email string) (passwordHash string, staffID int64, err error)
	GetActorByID(staffID int64) (*Actor, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(staffID int64, email string) (token string, err error)
	GenerateRefreshToken(staffID int64, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Actor is the authenticated staff member attached to each request.
type Actor struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	SchoolCode  string `json:"school_code"`
	Role        string `json:"role"`
	Designation string `json:"designation"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	StaffID int64  `json:"staff_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrStaffInactive      = errors.New("staff account is inactive")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
