package model

import (
	"regexp"
	"time"
)

type UserType string

const (
	UserTypeStudent      UserType = "student"
	UserTypeTutor        UserType = "tutor"
	UserTypeAdmin        UserType = "admin"
	UserTypeNotSpecified UserType = "not specified"
)

// AdminUsername is always forced to the admin type.
const AdminUsername = "@johndoe"

var usernamePattern = regexp.MustCompile(`^@\w{3,}$`)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeStudent, UserTypeTutor, UserTypeAdmin, UserTypeNotSpecified:
		return true
	}
	return false
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	UserType  UserType  `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns the user's first and last name joined by a space.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsStudent() bool { return u.UserType == UserTypeStudent }
func (u *User) IsTutor() bool   { return u.UserType == UserTypeTutor }

// ValidUsername reports whether s is "@" followed by at least three
// alphanumeric characters.
func ValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}
