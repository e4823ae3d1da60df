package models

import "time"

// ContractMode distinguishes online from in-center tutoring.
type ContractMode string

const (
	ContractModeOnline  ContractMode = "online"
	ContractModeOffline ContractMode = "offline"
)

// ContractStatus is the lifecycle state of a contract. Only active contracts
// participate in overlap and capacity checks.
type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "active"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusCancelled ContractStatus = "cancelled"
)

// ContractSchedule is the slice of a contract this service reasons about:
// its recurring weekly pattern plus the fields that drive tutor matching.
// Contract lifecycle itself is owned by the contract management service.
type ContractSchedule struct {
	ID            string         `db:"id" json:"id"`
	ChildID       string         `db:"child_id" json:"child_id"`
	PrimaryTutor  *string        `db:"primary_tutor_id" json:"primary_tutor_id,omitempty"`
	Mode          ContractMode   `db:"mode" json:"mode"`
	CenterID      *string        `db:"center_id" json:"center_id,omitempty"`
	Status        ContractStatus `db:"status" json:"status"`
	WeeklyPattern `json:"pattern"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
