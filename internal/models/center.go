package models

import "time"

// Center is a physical tutoring center. Latitude/longitude feed the
// distance sort for offline contracts.
type Center struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Latitude  float64   `db:"latitude" json:"latitude"`
	Longitude float64   `db:"longitude" json:"longitude"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ChildCenter links a child to their assigned center, when any. A child
// without a center can never receive an offline match.
type ChildCenter struct {
	ChildID  string  `db:"child_id" json:"child_id"`
	CenterID *string `db:"center_id" json:"center_id,omitempty"`
}
