package service

import (
	"context"
	"testing"

	"github.com/codetutors/tutorhub/internal/model"
)

// fakeDependents is an in-memory DependentRecords tracking one user's
// Student/Tutor records and the subjects attached to the tutor.
type fakeDependents struct {
	student         *model.Student
	tutor           *model.Tutor
	tutorSubjects   []string
	createdStudents int
	createdTutors   int
}

func (d *fakeDependents) GetStudentByUserID(_ context.Context, userID int64) (*model.Student, error) {
	if d.student != nil && d.student.UserID == userID {
		return d.student, nil
	}
	return nil, nil
}

func (d *fakeDependents) CreateStudent(_ context.Context, student *model.Student) error {
	student.ID = 101
	d.student = student
	d.createdStudents++
	return nil
}

func (d *fakeDependents) DeleteStudentByUserID(_ context.Context, userID int64) error {
	if d.student != nil && d.student.UserID == userID {
		d.student = nil
	}
	return nil
}

func (d *fakeDependents) GetTutorByUserID(_ context.Context, userID int64) (*model.Tutor, error) {
	if d.tutor != nil && d.tutor.UserID == userID {
		return d.tutor, nil
	}
	return nil, nil
}

func (d *fakeDependents) CreateTutor(_ context.Context, tutor *model.Tutor) error {
	tutor.ID = 201
	d.tutor = tutor
	d.createdTutors++
	return nil
}

func (d *fakeDependents) DeleteTutorByUserID(_ context.Context, userID int64) error {
	if d.tutor != nil && d.tutor.UserID == userID {
		d.tutor = nil
		d.tutorSubjects = nil
	}
	return nil
}

func (d *fakeDependents) AttachDefaultSubject(_ context.Context, tutorID int64) error {
	if d.tutor != nil && d.tutor.ID == tutorID {
		d.tutorSubjects = append(d.tutorSubjects, model.DefaultSubjectName)
	}
	return nil
}

func TestSyncDependents(t *testing.T) {
	user := func(userType model.UserType) *model.User {
		return &model.User{
			ID:        1,
			Username:  "@alice",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			UserType:  userType,
		}
	}

	tests := []struct {
		name        string
		userType    model.UserType
		deps        *fakeDependents
		wantStudent bool
		wantTutor   bool
	}{
		{
			name:        "fresh user becomes student",
			userType:    model.UserTypeStudent,
			deps:        &fakeDependents{},
			wantStudent: true,
		},
		{
			name:     "tutor switches to student",
			userType: model.UserTypeStudent,
			deps: &fakeDependents{
				tutor: &model.Tutor{ID: 201, UserID: 1, Rate: model.DefaultRate},
			},
			wantStudent: true,
		},
		{
			name:      "fresh user becomes tutor",
			userType:  model.UserTypeTutor,
			deps:      &fakeDependents{},
			wantTutor: true,
		},
		{
			name:     "student switches to tutor",
			userType: model.UserTypeTutor,
			deps: &fakeDependents{
				student: &model.Student{ID: 101, UserID: 1},
			},
			wantTutor: true,
		},
		{
			name:     "admin drops both dependents",
			userType: model.UserTypeAdmin,
			deps: &fakeDependents{
				student: &model.Student{ID: 101, UserID: 1},
				tutor:   &model.Tutor{ID: 201, UserID: 1},
			},
		},
		{
			name:     "not specified drops both dependents",
			userType: model.UserTypeNotSpecified,
			deps: &fakeDependents{
				student: &model.Student{ID: 101, UserID: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := syncDependents(context.Background(), tt.deps, user(tt.userType)); err != nil {
				t.Fatalf("syncDependents() = %v; want nil", err)
			}

			if got := tt.deps.student != nil; got != tt.wantStudent {
				t.Errorf("student record exists = %v; want %v", got, tt.wantStudent)
			}
			if got := tt.deps.tutor != nil; got != tt.wantTutor {
				t.Errorf("tutor record exists = %v; want %v", got, tt.wantTutor)
			}

			if tt.wantStudent && tt.deps.createdStudents > 0 {
				s := tt.deps.student
				if s.Name != "Ada Lovelace" || s.Email != "ada@example.com" {
					t.Errorf("student created as %q/%q; want owner's name and email", s.Name, s.Email)
				}
				if s.Payment != model.PaymentPending {
					t.Errorf("student payment = %q; want %q", s.Payment, model.PaymentPending)
				}
			}
			if tt.wantTutor && tt.deps.createdTutors > 0 {
				tu := tt.deps.tutor
				if !tu.Rate.Equal(model.DefaultRate) {
					t.Errorf("tutor rate = %s; want %s", tu.Rate, model.DefaultRate)
				}
				if len(tt.deps.tutorSubjects) != 1 || tt.deps.tutorSubjects[0] != model.DefaultSubjectName {
					t.Errorf("tutor subjects = %v; want just %q", tt.deps.tutorSubjects, model.DefaultSubjectName)
				}
			}
		})
	}
}

func TestSyncDependentsKeepsExistingRecord(t *testing.T) {
	deps := &fakeDependents{
		student: &model.Student{ID: 101, UserID: 1, Name: "Custom Name", Allocated: true},
	}
	user := &model.User{ID: 1, Email: "ada@example.com", UserType: model.UserTypeStudent}

	if err := syncDependents(context.Background(), deps, user); err != nil {
		t.Fatalf("syncDependents() = %v; want nil", err)
	}

	if deps.createdStudents != 0 {
		t.Errorf("created %d students; existing record must be kept as is", deps.createdStudents)
	}
	if deps.student == nil || deps.student.Name != "Custom Name" || !deps.student.Allocated {
		t.Errorf("existing student mutated: %+v", deps.student)
	}
}
