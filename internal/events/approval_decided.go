package events

import "time"

const ApprovalDecidedTopic = "attendance.approval.decided.v1"

const EventTypeApprovalDecided = "approval.decided"

// ApprovalDecidedEvent is emitted once per leave or overtime request when it
// leaves Pending. StartDate and EndDate are inclusive calendar dates.
type ApprovalDecidedEvent struct {
	EventType   string    `json:"event_type"`
	RequestType string    `json:"request_type"`
	RequestID   string    `json:"request_id"`
	EmployeeID  string    `json:"employee_id"`
	ApproverID  string    `json:"approver_id"`
	Decision    string    `json:"decision"`
	LeaveType   string    `json:"leave_type,omitempty"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}
