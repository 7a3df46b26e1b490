package dto

// ResolveComplaintRequest payload; the complaint id arrives as a query
// parameter on the legacy route.
type ResolveComplaintRequest struct {
	Response string `json:"response"`
}

// UpdateUserRoleRequest payload.
type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}
