package domain

// Records below back the role dashboards. They are not persisted.

// LeaveRequest is a leave entry shown to employees and managers.
type LeaveRequest struct {
	ID           string `json:"id"`
	EmployeeID   int64  `json:"employeeId,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`
	Type         string `json:"type"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Days         int    `json:"days,omitempty"`
	Reason       string `json:"reason"`
	Status       string `json:"status"`
	SubmittedAt  string `json:"submittedAt"`
	ReviewedBy   string `json:"reviewedBy,omitempty"`
}

// Task is a unit of work assigned to an employee.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
	AssignedBy  string `json:"assignedBy"`
	Progress    int    `json:"progress"`
}

// TimeEntry is a single timesheet line.
type TimeEntry struct {
	ID          string  `json:"id,omitempty"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	BreakTime   int     `json:"breakTime"`
	TotalHours  float64 `json:"totalHours,omitempty"`
	Description string  `json:"description"`
	SubmittedAt string  `json:"submittedAt,omitempty"`
}

// Announcement is a message published to a team.
type Announcement struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	CreatedBy      string `json:"createdBy"`
	CreatedAt      string `json:"createdAt"`
	Priority       string `json:"priority,omitempty"`
	TargetAudience string `json:"targetAudience,omitempty"`
	Status         string `json:"status,omitempty"`
	Read           *bool  `json:"read,omitempty"`
}

// Issue is a problem reported by an employee.
type Issue struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	ReportedAt  string `json:"reportedAt"`
	AssignedTo  string `json:"assignedTo"`
}

// Shift is a working window for one day.
type Shift struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Status string `json:"status"`
}

// TeamSchedule is a member's weekly schedule as seen by a manager.
type TeamSchedule struct {
	EmployeeID   int64             `json:"employeeId"`
	EmployeeName string            `json:"employeeName"`
	Schedule     map[string]string `json:"schedule"`
	Status       string            `json:"status"`
}

// Equipment is a hardware asset.
type Equipment struct {
	ID           int    `json:"id"`
	Type         string `json:"type"`
	Model        string `json:"model,omitempty"`
	SerialNumber string `json:"serialNumber,omitempty"`
	Assigned     string `json:"assigned,omitempty"`
	Status       string `json:"status,omitempty"`
}
