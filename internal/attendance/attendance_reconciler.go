package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a validated attendance submission. Nil optional fields mean
// "not supplied".
type Submission struct {
	EmployeeID   uuid.UUID
	RecordDate   time.Time
	ClockInTime  *time.Time
	ClockOutTime *time.Time
	Status       string
	Remark       *string
}

// reconcile returns the record that should be stored after applying s.
// With no existing record it builds a new one; otherwise supplied optional
// fields overwrite, the rest keep their stored values, and status is
// always overwritten. UpdatedAt only moves when content changes.
func reconcile(existing *AttendanceRecord, s Submission, now time.Time) AttendanceRecord {
	if existing == nil {
		return AttendanceRecord{
			ID:           uuid.New(),
			EmployeeID:   s.EmployeeID,
			RecordDate:   s.RecordDate,
			ClockInTime:  s.ClockInTime,
			ClockOutTime: s.ClockOutTime,
			Status:       s.Status,
			Remark:       s.Remark,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	merged := *existing
	if s.ClockInTime != nil {
		merged.ClockInTime = s.ClockInTime
	}
	if s.ClockOutTime != nil {
		merged.ClockOutTime = s.ClockOutTime
	}
	if s.Remark != nil {
		merged.Remark = s.Remark
	}
	merged.Status = s.Status

	if !sameContent(*existing, merged) {
		merged.UpdatedAt = now
	}
	return merged
}

func sameContent(a, b AttendanceRecord) bool {
	return sameTime(a.ClockInTime, b.ClockInTime) &&
		sameTime(a.ClockOutTime, b.ClockOutTime) &&
		a.Status == b.Status &&
		sameString(a.Remark, b.Remark)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
