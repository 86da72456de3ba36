package entity

import "time"

// User is a registered chat user. The delivery pipeline broadcasts to a
// single channel and does not consult this table; it exists for the
// interactive bot surface and for future per-user delivery.
type User struct {
	ID        int64
	ChatID    int64
	Username  string
	CreatedAt time.Time
}
