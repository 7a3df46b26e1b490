package dto

import (
	"time"

	"github.com/Ru28/complaint-management-system/internal/domain"
)

// RaiseComplaintRequest payload.
type RaiseComplaintRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	ComplaintDetail string `json:"complaintDetail"`
}

// ComplaintResponse represents one complaint.
type ComplaintResponse struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"userId"`
	FirstName       string                 `json:"firstName"`
	LastName        string                 `json:"lastName"`
	Email           string                 `json:"email"`
	PhoneNumber     string                 `json:"phoneNumber"`
	ComplaintDetail string                 `json:"complaintDetail"`
	Status          domain.ComplaintStatus `json:"status"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// ResolutionResponse represents one resolution record.
type ResolutionResponse struct {
	ID          string    `json:"id"`
	ComplaintID string    `json:"complaintId"`
	Response    string    `json:"response"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ComplaintWithResolutionResponse pairs a complaint with its latest
// resolution for the admin overview.
type ComplaintWithResolutionResponse struct {
	ComplaintResponse
	Resolution *ResolutionResponse `json:"resolution,omitempty"`
}

// NewComplaintResponse maps a domain complaint.
func NewComplaintResponse(complaint *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:              complaint.ID,
		UserID:          complaint.UserID,
		FirstName:       complaint.FirstName,
		LastName:        complaint.LastName,
		Email:           complaint.Email,
		PhoneNumber:     complaint.PhoneNumber,
		ComplaintDetail: complaint.Detail,
		Status:          complaint.Status,
		CreatedAt:       complaint.CreatedAt,
		UpdatedAt:       complaint.UpdatedAt,
	}
}

// NewResolutionResponse maps a domain resolution.
func NewResolutionResponse(resolution *domain.Resolution) ResolutionResponse {
	return ResolutionResponse{
		ID:          resolution.ID,
		ComplaintID: resolution.ComplaintID,
		Response:    resolution.Response,
		CreatedAt:   resolution.CreatedAt,
		UpdatedAt:   resolution.UpdatedAt,
	}
}

// NewComplaintWithResolutionResponse maps an admin overview row.
func NewComplaintWithResolutionResponse(item domain.ComplaintWithResolution) ComplaintWithResolutionResponse {
	resp := ComplaintWithResolutionResponse{
		ComplaintResponse: NewComplaintResponse(&item.Complaint),
	}
	if item.Resolution != nil {
		resolution := NewResolutionResponse(item.Resolution)
		resp.Resolution = &resolution
	}
	return resp
}
