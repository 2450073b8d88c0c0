package model

import "testing"

func TestValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"@johndoe", true},
		{"@abc", true},
		{"@user_42", true},
		{"@ab", false},
		{"johndoe", false},
		{"@", false},
		{"@john doe", false},
		{"", false},
		{"@john!", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			if got := ValidUsername(tt.username); got != tt.want {
				t.Errorf("ValidUsername(%q) = %v; want %v", tt.username, got, tt.want)
			}
		})
	}
}

func TestUserTypeValid(t *testing.T) {
	for _, ut := range []UserType{UserTypeStudent, UserTypeTutor, UserTypeAdmin, UserTypeNotSpecified} {
		if !ut.Valid() {
			t.Errorf("%q should be valid", ut)
		}
	}
	if UserType("principal").Valid() {
		t.Error(`"principal" should not be valid`)
	}
}

func TestFullName(t *testing.T) {
	u := &User{FirstName: "Ada", LastName: "Lovelace"}
	if got := u.FullName(); got != "Ada Lovelace" {
		t.Errorf("FullName() = %q; want %q", got, "Ada Lovelace")
	}
}

func TestNormalizeEmail(t *testing.T) {
	s := &Student{Email: "Ada@Example.COM"}
	s.NormalizeEmail()
	if s.Email != "ada@example.com" {
		t.Errorf("NormalizeEmail() = %q; want lowercase", s.Email)
	}
}
