package domain

import "time"

// Resolution is an admin-authored response to one complaint. A complaint
// may accumulate several; the most recently updated one is authoritative.
// Resolutions are append-only: each admin response is a new record.
type Resolution struct {
	ID          string
	ComplaintID string
	Response    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComplaintWithResolution pairs a complaint with its latest resolution,
// if any, for the admin overview.
type ComplaintWithResolution struct {
	Complaint  Complaint
	Resolution *Resolution
}
