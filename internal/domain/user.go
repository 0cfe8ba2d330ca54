package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Valid user roles
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

var validRoles = map[string]bool{
	RoleAdmin:   true,
	RoleManager: true,
	RoleStaff:   true,
}

func IsValidRole(role string) bool {
	return validRoles[role]
}

type LoginRequest struct {
	Tenant   string `json:"tenant" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *LoginRequest) Normalize() {
	r.Tenant = strings.TrimSpace(r.Tenant)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int64     `json:"expiresIn"`
	User        *UserInfo `json:"user"`
}

// UserInfo mirrors the token claims: subject, email, tenant, role.
type UserInfo struct {
	Sub      string `json:"sub"`
	Email    string `json:"email"`
	TenantID string `json:"tenantId"`
	Role     string `json:"role"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=ADMIN MANAGER STAFF"`
}

func (r *CreateUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
}

// ToUserInfo converts User to the claim-shaped view without sensitive data.
func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		Sub:      u.ID,
		Email:    u.Email,
		TenantID: u.TenantID,
		Role:     u.Role,
	}
}
