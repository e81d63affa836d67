package domain

// UserRole is the admin-surface role of a console user.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleViewer UserRole = "VIEWER"
)

// User is a console user shown on the admin surface. Authentication and
// session management live outside this service; users are listed and
// role-edited here only.
type User struct {
	UserID string   `json:"userID"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Role   UserRole `json:"role"`
	AuditFields
}
