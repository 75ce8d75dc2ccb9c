package models

import (
	"time"
)

// Scheduler run states
const (
	SchedulerStatusStart   = "START"
	SchedulerStatusSuccess = "SUCCESS"
	SchedulerStatusFailed  = "FAILED"
)

// SchedulerLog represents the portal_scheduler_logs table
type SchedulerLog struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	RunID     string    `json:"run_id" gorm:"column:run_id;size:36;index"`
	JobCode   string    `json:"job_code" gorm:"column:job_code;size:64"`
	Status    string    `json:"status" gorm:"column:status;size:16"`
	Message   string    `json:"message" gorm:"column:message;type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the insert table name for SchedulerLog
func (SchedulerLog) TableName() string {
	return "portal_scheduler_logs"
}
