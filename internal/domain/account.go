package domain

import (
	"context"
	"time"
)

const (
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
)

// BasicAccountRecord is the top-level per-user record (users/{uid}).
type BasicAccountRecord struct {
	UID             string    `json:"uid"`
	DisplayName     string    `json:"displayName"`
	JobTitle        string    `json:"jobTitle"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Location        string    `json:"location"`
	Summary         string    `json:"summary"`
	PhotoURL        string    `json:"photoURL,omitempty"`
	Role            string    `json:"role"`
	ProfileComplete bool      `json:"profileComplete"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// UpdateAccountRequest carries a partial account edit; nil fields are left
// untouched.
type UpdateAccountRequest struct {
	DisplayName *string `json:"displayName" validate:"omitempty,min=1,max=100,valid_name"`
	JobTitle    *string `json:"jobTitle" validate:"omitempty,max=100,no_emoji"`
	Phone       *string `json:"phone" validate:"omitempty,valid_phone"`
	Location    *string `json:"location" validate:"omitempty,max=120"`
	Summary     *string `json:"summary" validate:"omitempty,max=2000"`
}

type AccountUsecase interface {
	EnsureAccount(ctx context.Context) (*BasicAccountRecord, error)
	GetAccount(ctx context.Context) (*BasicAccountRecord, error)
	UpdateAccount(ctx context.Context, req *UpdateAccountRequest) (*BasicAccountRecord, error)
	UploadPhoto(ctx context.Context, data []byte) (*BasicAccountRecord, error)
}

// PhotoStorage persists processed profile photos and returns their public URL.
type PhotoStorage interface {
	PutPhoto(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
