// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Email              string  `json:"email"    validate:"required,email,max=255"`
	Password           string  `json:"password" validate:"required,min=8,max=128"`
	Name               string  `json:"name"     validate:"required,min=1,max=100"`
	Mobile             string  `json:"mobile"   validate:"required,min=7,max=20"`
	Role               string  `json:"role"     validate:"required,oneof=admin salesman owner user"`
	City               *string `json:"city,omitempty" validate:"omitempty,max=100"`
	CategoryPreference *string `json:"categoryPreference,omitempty" validate:"omitempty,uuid4"`
}

type UpdateUserRequest struct {
	Name               *string `json:"name,omitempty"   validate:"omitempty,min=1,max=100"`
	Mobile             *string `json:"mobile,omitempty" validate:"omitempty,min=7,max=20"`
	City               *string `json:"city,omitempty"   validate:"omitempty,max=100"`
	CategoryPreference *string `json:"categoryPreference,omitempty" validate:"omitempty,uuid4"`
}

type ActivateSubscriptionRequest struct {
	PlanType   string    `json:"planType"   validate:"required,min=1,max=50"`
	ExpiryDate time.Time `json:"expiryDate" validate:"required"`
}

type SubscriptionResponse struct {
	Status     string     `json:"status"`
	PlanType   *string    `json:"planType,omitempty"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}

type UserResponse struct {
	ID                 string               `json:"id"`
	Email              string               `json:"email"`
	Name               string               `json:"name"`
	Mobile             string               `json:"mobile"`
	Role               string               `json:"role"`
	Status             string               `json:"status"`
	City               *string              `json:"city,omitempty"`
	CategoryPreference *string              `json:"categoryPreference,omitempty"`
	Subscription       SubscriptionResponse `json:"subscription"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

type ListUsersParams struct {
	Page   int
	Limit  int
	Search string
	Role   string
	Status string
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		Mobile:             u.Mobile,
		Role:               u.Role,
		Status:             u.Status,
		City:               u.City,
		CategoryPreference: u.CategoryPreference,
		Subscription: SubscriptionResponse{
			Status:     u.SubscriptionStatus,
			PlanType:   u.PlanType,
			StartDate:  u.SubscriptionStart,
			ExpiryDate: u.SubscriptionExpiry,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
