package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"societyhub/internal/config"
	"societyhub/internal/model"
	"societyhub/internal/repository"
	"societyhub/pkg/generic"
	"societyhub/pkg/util"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSocietyNotLinked   = errors.New("admin is not linked to the requested society")
)

// Claims is the JWT payload issued at login
type Claims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles password login, token issuance and request scoping
type AuthService struct {
	users repository.IUserRepository
	cache UserCache
	cfg   *config.Config
	now   func() time.Time
}

func NewAuthService(users repository.IUserRepository, cache UserCache, cfg *config.Config) *AuthService {
	if cache == nil {
		cache = NewMemoryUserCache(cfg.Redis.UserTTL)
	}
	return &AuthService{users: users, cache: cache, cfg: cfg, now: time.Now}
}

// Login checks an identifier (phone or email) and password pair
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*model.AuthResponse, error) {
	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !util.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return s.IssueFor(user)
}

// IssueFor signs a token for an already authenticated user
func (s *AuthService) IssueFor(user *model.User) (*model.AuthResponse, error) {
	token, expiresAt, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) IssueToken(user *model.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.Auth.TokenTTL)
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *AuthService) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Auth.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate resolves a bearer token to an active user
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*model.User, error) {
	claims, err := s.ParseToken(raw)
	if err != nil {
		return nil, err
	}
	user, err := s.LoadUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}

// LoadUser reads through the user cache
func (s *AuthService) LoadUser(ctx context.Context, id uint) (*model.User, error) {
	if user, ok := s.cache.Get(ctx, id); ok {
		return user, nil
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user != nil {
		s.cache.Set(ctx, user)
	}
	return user, nil
}

// InvalidateUser drops a cached user after its row or links change
func (s *AuthService) InvalidateUser(ctx context.Context, id uint) {
	s.cache.Delete(ctx, id)
}

// ResolveScope computes which rows user may reach. For admins the active
// society is the earliest linked one unless requested names another link;
// an admin without links falls back to the society on the user row.
func (s *AuthService) ResolveScope(user *model.User, requested uint) (generic.Scope, error) {
	sc := generic.Scope{UserID: user.ID, Role: user.Role}
	switch user.Role {
	case model.RoleSuperadmin:
		sc.Unrestricted = true
		return sc, nil
	case model.RoleAdmin:
		if requested != 0 {
			for _, link := range user.AdminSocieties {
				if link.SocietyID == requested {
					sc.SocietyID = requested
					return sc, nil
				}
			}
			if len(user.AdminSocieties) == 0 && requested == user.GetSocietyID() {
				sc.SocietyID = requested
				return sc, nil
			}
			return sc, ErrSocietyNotLinked
		}
		if len(user.AdminSocieties) > 0 {
			sc.SocietyID = user.AdminSocieties[0].SocietyID
			return sc, nil
		}
		sc.SocietyID = user.GetSocietyID()
		return sc, nil
	default:
		sc.SocietyID = user.GetSocietyID()
		sc.Personal = model.IsPersonalRole(user.Role)
		return sc, nil
	}
}
