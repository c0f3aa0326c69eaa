package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hail/internal/domain"
	"hail/internal/repository"
)

// Role names carried in token claims.
const (
	RoleRider   = "user"
	RoleCaptain = "captain"
)

// Claims are the JWT claims issued at login.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService registers accounts and issues/verifies bearer tokens.
type AuthService struct {
	userRepo    repository.UserRepository
	captainRepo repository.CaptainRepository
	secret      []byte
	expiry      time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	captainRepo repository.CaptainRepository,
	secret string,
	expiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		captainRepo: captainRepo,
		secret:      []byte(secret),
		expiry:      expiry,
	}
}

// RegisterUserRequest contains the parameters for rider registration.
type RegisterUserRequest struct {
	Name     string
	Phone    string
	Password string
}

// RegisterUser creates a rider account and returns it with a token.
func (s *AuthService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*domain.User, string, error) {
	if _, err := s.userRepo.GetByPhone(ctx, req.Phone); err == nil {
		return nil, "", ErrPhoneAlreadyRegistered
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user.ID, RoleRider)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// RegisterCaptainRequest contains the parameters for captain registration.
type RegisterCaptainRequest struct {
	Name         string
	Phone        string
	Password     string
	VehiclePlate string
	VehicleClass domain.VehicleClass
}

// RegisterCaptain creates a captain account and returns it with a token.
func (s *AuthService) RegisterCaptain(ctx context.Context, req RegisterCaptainRequest) (*domain.Captain, string, error) {
	if _, err := s.captainRepo.GetByPhone(ctx, req.Phone); err == nil {
		return nil, "", ErrPhoneAlreadyRegistered
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	captain := &domain.Captain{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		VehiclePlate: req.VehiclePlate,
		VehicleClass: req.VehicleClass,
		CreatedAt:    time.Now(),
	}

	if err := s.captainRepo.Create(ctx, captain); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(captain.ID, RoleCaptain)
	if err != nil {
		return nil, "", err
	}

	return captain, token, nil
}

// LoginUser verifies rider credentials and issues a token.
func (s *AuthService) LoginUser(ctx context.Context, phone, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID, RoleRider)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// LoginCaptain verifies captain credentials and issues a token.
func (s *AuthService) LoginCaptain(ctx context.Context, phone, password string) (*domain.Captain, string, error) {
	captain, err := s.captainRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(captain.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(captain.ID, RoleCaptain)
	if err != nil {
		return nil, "", err
	}

	return captain, token, nil
}

// IssueToken mints a signed bearer token for the account.
func (s *AuthService) IssueToken(accountID, role string) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// VerifyToken validates a bearer token and returns its claims.
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	return claims, nil
}
