package dto

// LeaveDecisionRequest payload for a manager reviewing leave.
type LeaveDecisionRequest struct {
	Approved bool   `json:"approved"`
	Comments string `json:"comments" validate:"omitempty,max=500"`
}

// AnnouncementRequest payload for a team announcement.
type AnnouncementRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required"`
}

// LeaveSubmitRequest payload for an employee leave request.
type LeaveSubmitRequest struct {
	LeaveType string `json:"leaveType" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Reason    string `json:"reason" validate:"omitempty,max=500"`
}

// TaskStatusRequest payload for a task status change.
type TaskStatusRequest struct {
	Status   string `json:"status" validate:"required"`
	Comments string `json:"comments" validate:"omitempty,max=500"`
}

// TimeEntryRequest payload for a timesheet entry.
type TimeEntryRequest struct {
	Date        string `json:"date" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	BreakTime   int    `json:"breakTime" validate:"gte=0"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// IssueReportRequest payload for an employee issue report.
type IssueReportRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	Priority    string `json:"priority" validate:"required,max=50"`
	Category    string `json:"category" validate:"required,max=100"`
}
