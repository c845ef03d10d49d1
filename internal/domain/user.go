package domain

// User is a directory entry managed through the dashboard. Role is opaque
// metadata; it does not gate any server-side capability.
type User struct {
	ID   int64
	Name string
	Role string
}
