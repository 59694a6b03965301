package handler

import (
	"time"

	"github.com/mugstore/backoffice/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Username      string `json:"username"   form:"username"   validate:"required,min=3,max=64"`
	Email         string `json:"email"      form:"email"      validate:"required,email"`
	FirstName     string `json:"first_name" form:"first_name" validate:"max=64"`
	LastName      string `json:"last_name"  form:"last_name"  validate:"max=64"`
	Password      string `json:"password"   form:"password"   validate:"required,min=8"`
	Role          string `json:"role"       form:"role"       validate:"required,oneof=super_admin admin manager staff"`
	Phone         string `json:"phone"      form:"phone"      validate:"max=32"`
	IsActiveAdmin bool   `json:"is_active_admin" form:"is_active_admin"`
}

type updateUserRequest struct {
	Username      string `json:"username"   form:"username"   validate:"required,min=3,max=64"`
	Email         string `json:"email"      form:"email"      validate:"required,email"`
	FirstName     string `json:"first_name" form:"first_name" validate:"max=64"`
	LastName      string `json:"last_name"  form:"last_name"  validate:"max=64"`
	Role          string `json:"role"       form:"role"       validate:"required,oneof=super_admin admin manager staff"`
	Phone         string `json:"phone"      form:"phone"      validate:"max=32"`
	IsActiveAdmin bool   `json:"is_active_admin" form:"is_active_admin"`
}

type updateProfileRequest struct {
	FirstName string `json:"first_name" form:"first_name" validate:"max=64"`
	LastName  string `json:"last_name"  form:"last_name"  validate:"max=64"`
	Email     string `json:"email"      form:"email"      validate:"required,email"`
	Phone     string `json:"phone"      form:"phone"      validate:"max=32"`
}

// --- Response types ---

type userResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	FullName      string `json:"full_name"`
	Role          string `json:"role"`
	Phone         string `json:"phone,omitempty"`
	AvatarPath    string `json:"avatar_path,omitempty"`
	IsActiveAdmin bool   `json:"is_active_admin"`
	LastLoginIP   string `json:"last_login_ip,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userListResponse struct {
	Items      []userResponse `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

type auditEntryResponse struct {
	ID          string `json:"id"`
	ActorID     string `json:"actor_id"`
	Actor       string `json:"actor"`
	Action      string `json:"action"`
	ModelName   string `json:"model_name"`
	ObjectID    string `json:"object_id,omitempty"`
	Description string `json:"description"`
	IPAddress   string `json:"ip_address"`
	Timestamp   string `json:"timestamp"`
}

type auditListResponse struct {
	Items      []auditEntryResponse `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
}

// --- Mappers ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		FullName:      u.FullName(),
		Role:          string(u.Role),
		Phone:         u.Phone,
		AvatarPath:    u.AvatarPath,
		IsActiveAdmin: u.IsActiveAdmin,
		LastLoginIP:   u.LastLoginIP,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

func toAuditEntryResponse(e *domain.AuditEntry) auditEntryResponse {
	return auditEntryResponse{
		ID:          e.ID,
		ActorID:     e.ActorID,
		Actor:       e.Actor,
		Action:      string(e.Action),
		ModelName:   e.ModelName,
		ObjectID:    e.ObjectID,
		Description: e.Description,
		IPAddress:   e.IPAddress,
		Timestamp:   e.Timestamp.Format(time.RFC3339),
	}
}
