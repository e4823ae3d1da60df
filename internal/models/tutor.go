package models

import (
	"time"

	"github.com/lib/pq"
)

// TutorStatus is the account state of a tutor.
type TutorStatus string

const (
	TutorStatusActive   TutorStatus = "active"
	TutorStatusInactive TutorStatus = "inactive"
)

// Tutor represents a tutor as seen by the matching engine: account status,
// teaching capabilities and center affiliations. The full profile lives in
// the user directory service.
type Tutor struct {
	ID              string         `db:"id" json:"id"`
	FullName        string         `db:"full_name" json:"full_name"`
	Email           string         `db:"email" json:"email"`
	Status          TutorStatus    `db:"status" json:"status"`
	CanTeachOnline  bool           `db:"can_teach_online" json:"can_teach_online"`
	CanTeachOffline bool           `db:"can_teach_offline" json:"can_teach_offline"`
	CenterIDs       pq.StringArray `db:"center_ids" json:"center_ids"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// HasCenter reports whether the tutor is affiliated with the given center.
func (t Tutor) HasCenter(centerID string) bool {
	for _, id := range t.CenterIDs {
		if id == centerID {
			return true
		}
	}
	return false
}

// TutorCandidate is a tutor surviving the eligibility filter, decorated with
// the optional sort keys.
type TutorCandidate struct {
	Tutor
	AverageRating *float64 `json:"average_rating,omitempty"`
	DistanceKm    *float64 `json:"distance_km,omitempty"`
}
