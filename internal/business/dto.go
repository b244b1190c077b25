// AngelaMos | 2026
// dto.go

package business

import (
	"time"
)

type PaymentDetailsRequest struct {
	Amount      int64   `json:"amount"      validate:"gte=0"`
	PaymentMode string  `json:"paymentMode" validate:"required,oneof=cash upi"`
	PaymentNote *string `json:"paymentNote,omitempty" validate:"omitempty,max=500"`
}

type CreateBusinessRequest struct {
	BusinessName   string                `json:"businessName" validate:"required,min=2,max=150"`
	CategoryID     string                `json:"categoryId"   validate:"required,uuid4"`
	Phone          string                `json:"phone"        validate:"required,min=7,max=20"`
	Address        string                `json:"address"      validate:"required,min=3,max=300"`
	City           string                `json:"city"         validate:"required,min=2,max=100"`
	ServiceArea    *string               `json:"serviceArea,omitempty" validate:"omitempty,max=200"`
	Description    *string               `json:"description,omitempty" validate:"omitempty,max=2000"`
	BusinessType   string                `json:"businessType" validate:"required,oneof=leads booking hybrid"`
	OwnerID        *string               `json:"ownerId,omitempty" validate:"omitempty,uuid4"`
	PaymentDetails PaymentDetailsRequest `json:"paymentDetails" validate:"required"`
}

// UpdateBusinessRequest touches descriptive fields only. Status
// dimensions move exclusively through the lifecycle operations.
type UpdateBusinessRequest struct {
	BusinessName *string `json:"businessName,omitempty" validate:"omitempty,min=2,max=150"`
	CategoryID   *string `json:"categoryId,omitempty"   validate:"omitempty,uuid4"`
	Phone        *string `json:"phone,omitempty"        validate:"omitempty,min=7,max=20"`
	Address      *string `json:"address,omitempty"      validate:"omitempty,min=3,max=300"`
	City         *string `json:"city,omitempty"         validate:"omitempty,min=2,max=100"`
	ServiceArea  *string `json:"serviceArea,omitempty"  validate:"omitempty,max=200"`
	Description  *string `json:"description,omitempty"  validate:"omitempty,max=2000"`
	OwnerID      *string `json:"ownerId,omitempty"      validate:"omitempty,uuid4"`
}

type RejectBusinessRequest struct {
	RejectionReason string `json:"rejectionReason" validate:"required,min=1,max=500"`
}

type PaymentDetailsResponse struct {
	Amount        int64   `json:"amount"`
	PaymentMode   string  `json:"paymentMode"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentNote   *string `json:"paymentNote,omitempty"`
}

type VerificationResponse struct {
	Status     string     `json:"status"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
}

type BusinessResponse struct {
	ID                   string                 `json:"id"`
	BusinessName         string                 `json:"businessName"`
	CategoryID           string                 `json:"categoryId"`
	Phone                string                 `json:"phone"`
	Address              string                 `json:"address"`
	City                 string                 `json:"city"`
	ServiceArea          *string                `json:"serviceArea,omitempty"`
	Description          *string                `json:"description,omitempty"`
	BusinessType         string                 `json:"businessType"`
	ListingType          string                 `json:"listingType"`
	ApprovalStatus       string                 `json:"approvalStatus"`
	IsPremium            bool                   `json:"isPremium"`
	PremiumSource        string                 `json:"premiumSource"`
	PremiumExpiry        *time.Time             `json:"premiumExpiry,omitempty"`
	PremiumRequestStatus string                 `json:"premiumRequestStatus"`
	IsVisible            bool                   `json:"isVisible"`
	PaymentDetails       PaymentDetailsResponse `json:"paymentDetails"`
	Verification         VerificationResponse   `json:"verification"`
	RejectionReason      *string                `json:"rejectionReason,omitempty"`
	OwnerID              *string                `json:"ownerId,omitempty"`
	CreatedBy            string                 `json:"createdBy"`
	CreatedAt            time.Time              `json:"createdAt"`
	UpdatedAt            time.Time              `json:"updatedAt"`
}

type ListBusinessParams struct {
	Page                 int
	Limit                int
	Search               string
	ApprovalStatus       string
	ListingType          string
	CategoryID           string
	City                 string
	CreatedBy            string
	BusinessType         string
	PremiumRequestStatus string
	IsPremium            *bool
}

func (p *ListBusinessParams) Normalize() {
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

func (p *ListBusinessParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func ToBusinessResponse(b *Business) BusinessResponse {
	return BusinessResponse{
		ID:                   b.ID,
		BusinessName:         b.BusinessName,
		CategoryID:           b.CategoryID,
		Phone:                b.Phone,
		Address:              b.Address,
		City:                 b.City,
		ServiceArea:          b.ServiceArea,
		Description:          b.Description,
		BusinessType:         b.BusinessType,
		ListingType:          b.ListingType,
		ApprovalStatus:       b.ApprovalStatus,
		IsPremium:            b.IsPremium,
		PremiumSource:        b.PremiumSource,
		PremiumExpiry:        b.PremiumExpiry,
		PremiumRequestStatus: b.PremiumRequestStatus,
		IsVisible:            b.IsVisible,
		PaymentDetails: PaymentDetailsResponse{
			Amount:        b.PaymentAmount,
			PaymentMode:   b.PaymentMode,
			PaymentStatus: b.PaymentStatus,
			PaymentNote:   b.PaymentNote,
		},
		Verification: VerificationResponse{
			Status:     b.VerificationStatus,
			VerifiedAt: b.VerifiedAt,
		},
		RejectionReason: b.RejectionReason,
		OwnerID:         b.OwnerID,
		CreatedBy:       b.CreatedBy,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func ToBusinessResponseList(businesses []Business) []BusinessResponse {
	responses := make([]BusinessResponse, 0, len(businesses))
	for _, b := range businesses {
		responses = append(responses, ToBusinessResponse(&b))
	}
	return responses
}
