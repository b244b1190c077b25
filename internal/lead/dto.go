// AngelaMos | 2026
// dto.go

package lead

import "time"

type CreateLeadRequest struct {
	CustomerName string  `json:"customerName" validate:"required,min=2,max=150"`
	Phone        string  `json:"phone"        validate:"required,min=7,max=20"`
	Message      string  `json:"message"      validate:"required,min=1,max=2000"`
	LeadType     *string `json:"leadType,omitempty" validate:"omitempty,max=50"`
	BusinessID   *string `json:"businessId,omitempty" validate:"omitempty,uuid4"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted converted"`
}

type AssignLeadRequest struct {
	BusinessID string `json:"businessId" validate:"required,uuid4"`
}

type BulkAssignRequest struct {
	LeadIDs    []string `json:"leadIds"    validate:"required,min=1,max=100,dive,uuid4"`
	BusinessID string   `json:"businessId" validate:"required,uuid4"`
}

// BulkAssignResult reports the outcome for one lead id. A bulk call
// never fails as a whole; callers inspect each entry.
type BulkAssignResult struct {
	LeadID  string `json:"leadId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type LeadResponse struct {
	ID                 string    `json:"id"`
	CustomerName       string    `json:"customerName"`
	Phone              string    `json:"phone"`
	Message            string    `json:"message"`
	Status             string    `json:"status"`
	LeadType           *string   `json:"leadType,omitempty"`
	AssignedTo         *string   `json:"assignedTo,omitempty"`
	BusinessID         *string   `json:"businessId,omitempty"`
	AssignedBusinessID *string   `json:"assignedBusinessId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type ListLeadParams struct {
	Page       int
	Limit      int
	Status     string
	AssignedTo string
	BusinessID string
	Search     string
}

func (p *ListLeadParams) Normalize() {
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

func (p *ListLeadParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func ToLeadResponse(l *Lead) LeadResponse {
	return LeadResponse{
		ID:                 l.ID,
		CustomerName:       l.CustomerName,
		Phone:              l.Phone,
		Message:            l.Message,
		Status:             l.Status,
		LeadType:           l.LeadType,
		AssignedTo:         l.AssignedTo,
		BusinessID:         l.BusinessID,
		AssignedBusinessID: l.AssignedBusinessID,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func ToLeadResponseList(leads []Lead) []LeadResponse {
	responses := make([]LeadResponse, 0, len(leads))
	for _, l := range leads {
		responses = append(responses, ToLeadResponse(&l))
	}
	return responses
}
