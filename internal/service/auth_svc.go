package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/model"
	"store_rating_v1/internal/repository"
	"store_rating_v1/pkg/cache"
	"store_rating_v1/pkg/credential"
)

// ==================== AuthService ====================

// AuthService registration, login and session handling
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *credential.PasswordHasher
	tokens   *credential.TokenManager
	revoked  cache.RevocationStore
	log      logrus.FieldLogger
}

// NewAuthService creates the auth service
func NewAuthService(
	userRepo repository.UserRepository,
	hasher *credential.PasswordHasher,
	tokens *credential.TokenManager,
	revoked cache.RevocationStore,
	log logrus.FieldLogger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		revoked:  revoked,
		log:      log,
	}
}

// Register creates a user account; the role is always user.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := cleanEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    email,
		Password: digest,
		Address:  req.Address,
		Role:     model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.authResponse(user)
}

// Login checks credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := cleanEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// Authenticate resolves a bearer token to its claims and current user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*credential.Claims, *model.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, nil, newError(ErrUnauthenticated, "Invalid or expired token")
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, nil, newError(ErrUnauthenticated, "Token has been revoked")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, newError(ErrUnauthenticated, "User not found")
	}
	return claims, user, nil
}

// Logout revokes the presented token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, claims *credential.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.WithField("user_id", claims.UserID).Info("token revoked")
	return nil
}

// Me returns the caller's profile.
func (s *AuthService) Me(_ context.Context, user *model.User) *dto.MeResponse {
	return &dto.MeResponse{User: toUserInfo(user)}
}

// ChangePassword replaces the caller's password after checking the current one.
// Tokens issued before the change stay valid until they expire or are logged out.
func (s *AuthService) ChangePassword(ctx context.Context, user *model.User, req *dto.ChangePasswordRequest) error {
	if !s.hasher.Verify(req.CurrentPassword, user.Password) {
		return ErrWrongPassword
	}

	digest, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, digest)
}

func (s *AuthService) authResponse(user *model.User) (*dto.AuthResponse, error) {
	token, _, err := s.tokens.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &dto.AuthResponse{
		User:  toUserInfo(user),
		Token: token,
	}, nil
}
