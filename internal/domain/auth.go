package domain

// SelfAction enumerates privileged operations a user may never perform on
// their own account.
type SelfAction string

const (
	SelfActionChangeRole SelfAction = "change_role"
	SelfActionDelete     SelfAction = "delete"
)

// RoleDistribution counts users per role.
type RoleDistribution struct {
	Total     int64 `json:"totalUsers"`
	Admins    int64 `json:"admins"`
	Managers  int64 `json:"managers"`
	Employees int64 `json:"employees"`
}
