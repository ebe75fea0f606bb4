package dto

import "time"

// ==================== Auth ====================

// RegisterRequest self sign-up; the role is always user
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=20,max=60"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,password"`
	Address  string `json:"address" binding:"omitempty,max=400"`
}

// LoginRequest credentials; missing fields are reported as bad credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse register/login result
type AuthResponse struct {
	User  *UserInfo `json:"user"`
	Token string    `json:"token"`
}

// MeResponse current user
type MeResponse struct {
	User *UserInfo `json:"user"`
}

// ChangePasswordRequest self-service password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,password"`
}

// ==================== User info ====================

// UserInfo user as returned to clients, never with the password
type UserInfo struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	Store     *StoreInfo `json:"store,omitempty"`
}

// ==================== User management (admin) ====================

// CreateUserRequest admin creation, any role
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=20,max=60"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,password"`
	Address  string `json:"address" binding:"omitempty,max=400"`
	Role     string `json:"role" binding:"required,role"`
}

// UpdateUserRequest partial update; nil fields are left unchanged
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=20,max=60"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,password"`
	Address  *string `json:"address" binding:"omitempty,max=400"`
	Role     *string `json:"role" binding:"omitempty,role"`
}

// UserListQuery filters for GET /api/users
type UserListQuery struct {
	Name      string `form:"name"`
	Email     string `form:"email"`
	Address   string `form:"address"`
	Role      string `form:"role" binding:"omitempty,role"`
	SortBy    string `form:"sortBy" binding:"omitempty,oneof=name email address role createdAt"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}
