package dto

import (
	"time"

	"github.com/Ru28/complaint-management-system/internal/domain"
)

// SignupRequest payload for new accounts.
type SignupRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// LoginRequest payload. Either email or phone number identifies the account.
type LoginRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// UpdateProfileRequest carries optional profile fields; omitted fields
// are left unchanged. Email is immutable and not accepted.
type UpdateProfileRequest struct {
	FullName        *string `json:"fullName"`
	PhoneNumber     *string `json:"phoneNumber"`
	Address         *string `json:"address"`
	City            *string `json:"city"`
	State           *string `json:"state"`
	Pincode         *string `json:"pincode"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// PasswordResetRequest payload for initiating reset.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload for confirming reset.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PublicUser is the identity subset returned with tokens.
type PublicUser struct {
	ID          string      `json:"id"`
	FullName    string      `json:"fullName"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
	Role        domain.Role `json:"role"`
}

// ProfileResponse is the full profile, password excluded.
type ProfileResponse struct {
	ID              string      `json:"id"`
	FullName        string      `json:"fullName"`
	Email           string      `json:"email"`
	PhoneNumber     string      `json:"phoneNumber"`
	Role            domain.Role `json:"role"`
	Address         string      `json:"address"`
	City            string      `json:"city"`
	State           string      `json:"state"`
	Pincode         string      `json:"pincode"`
	ProfileImageURL string      `json:"profileImageUrl"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// NewPublicUser maps a domain user to its public subset.
func NewPublicUser(user *domain.User) PublicUser {
	return PublicUser{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
	}
}

// NewProfileResponse maps a domain user to the profile response.
func NewProfileResponse(user *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:              user.ID,
		FullName:        user.FullName,
		Email:           user.Email,
		PhoneNumber:     user.PhoneNumber,
		Role:            user.Role,
		Address:         user.Address,
		City:            user.City,
		State:           user.State,
		Pincode:         user.Pincode,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}
