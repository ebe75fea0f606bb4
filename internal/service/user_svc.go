package service

import (
	"context"
	"fmt"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/model"
	"store_rating_v1/internal/repository"
	"store_rating_v1/pkg/credential"
)

// ==================== UserService ====================

// UserService user administration
type UserService struct {
	userRepo repository.UserRepository
	hasher   *credential.PasswordHasher
}

// NewUserService creates the user service
func NewUserService(userRepo repository.UserRepository, hasher *credential.PasswordHasher) *UserService {
	return &UserService{userRepo: userRepo, hasher: hasher}
}

// List returns users matching the query, each with its owned store.
func (s *UserService) List(ctx context.Context, q *dto.UserListQuery) ([]*dto.UserInfo, error) {
	filter := repository.UserFilter{
		Name:      q.Name,
		Email:     q.Email,
		Address:   q.Address,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}
	if q.Role != "" {
		role, ok := model.ParseRole(q.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		filter.Role = role
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.UserInfo, 0, len(users))
	for i := range users {
		list = append(list, toUserWithStoreInfo(&users[i]))
	}
	return list, nil
}

// Get returns one user with its owned store.
func (s *UserService) Get(ctx context.Context, id int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetWithStore(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserWithStoreInfo(user), nil
}

// Create adds a user with any role.
func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserInfo, error) {
	role, ok := model.ParseRole(req.Role)
	if !ok {
		return nil, ErrInvalidRole
	}
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
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// Update merges the given fields into user id. Non-admins may only update
// themselves and may not change their role.
func (s *UserService) Update(ctx context.Context, actor *model.User, id int64, req *dto.UpdateUserRequest) (*dto.UserInfo, error) {
	isAdmin := actor.Role == model.RoleAdmin
	if !isAdmin && actor.ID != id {
		return nil, ErrNotSelf
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Email != nil {
		email := cleanEmail(*req.Email)
		if email != target.Email {
			existing, err := s.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != target.ID {
				return nil, ErrEmailTaken
			}
			fields["email"] = email
		}
	}
	if req.Role != nil {
		role, ok := model.ParseRole(*req.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		if role != target.Role {
			if !isAdmin {
				return nil, ErrRoleChangeForbidden
			}
			fields["role"] = role
		}
	}
	if req.Password != nil {
		digest, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password"] = digest
	}

	updated, err := s.userRepo.Update(ctx, id, fields)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	return toUserInfo(updated), nil
}

// Delete removes a user, its ratings and its store ownership.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	found, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrUserNotFound
	}
	return nil
}
