package domain

import "time"

// InviteStatus tracks the invite lifecycle. An invite completes exactly once
// and is terminal afterwards.
type InviteStatus string

const (
	InviteStatusPending   InviteStatus = "pending"
	InviteStatusCompleted InviteStatus = "completed"
)

// Invite permits exactly one registration for a given email.
type Invite struct {
	ID        string
	Email     string
	Role      Role
	Status    InviteStatus
	CreatedAt time.Time
}
