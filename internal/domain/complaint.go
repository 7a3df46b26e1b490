package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "OPEN"
	ComplaintStatusInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintStatusResolved   ComplaintStatus = "RESOLVED"
)

// Complaint is a grievance raised by a user. The contact fields are a
// snapshot captured at submission time, not re-derived from the account.
type Complaint struct {
	ID          string
	UserID      string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Detail      string
	Status      ComplaintStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
