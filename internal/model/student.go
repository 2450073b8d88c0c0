package model

import "strings"

type Student struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Allocated bool          `json:"allocated"`
	Payment   PaymentStatus `json:"payment"`

	// Loaded on demand, not from the students table itself.
	User *User `json:"user,omitempty"`
}

// NormalizeEmail lowercases the email before it is persisted. Email
// uniqueness is case-insensitive.
func (s *Student) NormalizeEmail() {
	s.Email = strings.ToLower(s.Email)
}
