package models

import "fmt"

// Role decides what a user may see and do across the tracker.
type Role string

const (
	RoleBoss   Role = "boss"
	RoleMember Role = "member"
)

// ParseRole converts a stored role value into a Role.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleBoss, RoleMember:
		return Role(value), nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// MayViewAllTasks reports whether the role sees every task regardless of assignment.
func (r Role) MayViewAllTasks() bool {
	return r == RoleBoss
}

// MayManageUsers reports whether the role may inspect other users' profiles.
func (r Role) MayManageUsers() bool {
	return r == RoleBoss
}

// MayUpdateStatus reports whether username, holding this role, may change the status of task.
// The task must have its assignments loaded.
func (r Role) MayUpdateStatus(task *Task, username string) bool {
	if r == RoleBoss {
		return true
	}
	return task.IsAssignedTo(username)
}

// MayViewTask reports whether username, holding this role, may open task.
// The task must have its assignments loaded.
func (r Role) MayViewTask(task *Task, username string) bool {
	return r.MayViewAllTasks() || task.AssignedBy == username || task.IsAssignedTo(username)
}
