package entity

import (
	"time"
)

type User struct {
	ID     string `json:"id" firestore:"id"`
	Email  string `json:"email" firestore:"email"`
	Name   string `json:"name" firestore:"name"`
	Role   string `json:"role" firestore:"role"`     // "Student", "Faculty", "admin"
	Status string `json:"status" firestore:"status"` // "active", "banned"

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Banned reports whether the user has been banned by an admin. The messaging
// core only reads this flag; ban management lives in the admin service.
func (u *User) Banned() bool {
	return u.Status == "banned"
}
