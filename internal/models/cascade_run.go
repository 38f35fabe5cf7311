package models

import "time"

type CascadeRunStatus string

const (
	CascadeRunRunning   CascadeRunStatus = "running"
	CascadeRunCompleted CascadeRunStatus = "completed"
	CascadeRunFailed    CascadeRunStatus = "failed"
)

// CascadeRun is one journaled cascade over an organization or proposal.
// Tasks and Proposals count the dependents processed so far, so a failed
// run shows how far it got before the store rejected a step.
type CascadeRun struct {
	ID         string           `gorm:"primarykey;type:varchar(36)" json:"id"`
	EntityType string           `gorm:"type:varchar(20);not null;index" json:"entityType"`
	EntityID   string           `gorm:"type:varchar(255);not null;index" json:"entityId"`
	Mode       string           `gorm:"type:varchar(20);not null" json:"mode"`
	Status     CascadeRunStatus `gorm:"type:varchar(20);not null" json:"status"`
	Tasks      int              `gorm:"not null;default:0" json:"tasks"`
	Proposals  int              `gorm:"not null;default:0" json:"proposals"`
	Error      string           `gorm:"type:text" json:"error,omitempty"`
	Actor      string           `gorm:"type:varchar(255)" json:"actor"`
	StartedAt  time.Time        `gorm:"index" json:"startedAt"`
	FinishedAt *time.Time       `json:"finishedAt"`
}
