package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid username or password"}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      models.Person `json:"user"`
}

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Repo      repositories.PersonRepository
	Secret    []byte
	TTL       time.Duration
	RequestID string
}

func (s AuthService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 24 * time.Hour
}

func (s AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	p, err := s.Repo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(in.Username)))
	if domain.IsNotFound(err) {
		return LoginResult{}, errBadCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if p.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)) != nil {
		return LoginResult{}, errBadCredentials
	}
	if p.Blocked() {
		return LoginResult{}, domain.UnauthorizedError{Msg: "account is blocked"}
	}

	token, exp, err := s.IssueToken(p)
	if err != nil {
		return LoginResult{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", "user_id="+p.ID)
	return LoginResult{Token: token, ExpiresAt: exp, User: p}, nil
}

func (s AuthService) IssueToken(p models.Person) (string, time.Time, error) {
	if len(s.Secret) == 0 {
		return "", time.Time{}, domain.InternalError{Msg: "jwt secret not configured"}
	}
	exp := time.Now().Add(s.ttl())
	claims := Claims{
		UserID:    p.ID,
		CompanyID: p.CompanyID,
		Role:      p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, domain.InternalError{Msg: "sign token", Err: err}
	}
	return signed, exp, nil
}

// ParseToken verifies signature and expiry and returns the caller.
func (s AuthService) ParseToken(raw string) (domain.RequestContext, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.RequestContext{}, domain.UnauthorizedError{Msg: "token expired"}
		}
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token"}
	}
	if claims.UserID == "" || claims.CompanyID == "" {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "token missing company scope"}
	}
	return domain.RequestContext{UserID: claims.UserID, CompanyID: claims.CompanyID, Role: claims.Role}, nil
}
