package model

import "time"

type RequestType string

const (
	RequestProfileUpdate     RequestType = "profile_update"
	RequestPasswordReset     RequestType = "password_reset"
	RequestCourseEnrollment  RequestType = "course_enrollment"
	RequestTutorAssignment   RequestType = "tutor_assignment"
	RequestSessionSchedule   RequestType = "session_schedule"
	RequestPaymentIssue      RequestType = "payment_issue"
	RequestTechnicalSupport  RequestType = "technical_support"
	RequestFeedbackComplaint RequestType = "feedback_complaint"
	RequestCustom            RequestType = "custom_request"
)

func (rt RequestType) Valid() bool {
	switch rt {
	case RequestProfileUpdate, RequestPasswordReset, RequestCourseEnrollment,
		RequestTutorAssignment, RequestSessionSchedule, RequestPaymentIssue,
		RequestTechnicalSupport, RequestFeedbackComplaint, RequestCustom:
		return true
	}
	return false
}

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusResolved   RequestStatus = "resolved"
)

func (rs RequestStatus) Valid() bool {
	switch rs {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusResolved:
		return true
	}
	return false
}

type RequestPriority string

const (
	PriorityLow    RequestPriority = "low"
	PriorityMedium RequestPriority = "medium"
	PriorityHigh   RequestPriority = "high"
)

func (rp RequestPriority) Valid() bool {
	switch rp {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// StudentRequest is an ad-hoc support ticket raised by a user.
type StudentRequest struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Name        string          `json:"name"`
	RequestType RequestType     `json:"request_type"`
	Description string          `json:"description"`
	Status      RequestStatus   `json:"status"`
	Priority    RequestPriority `json:"priority"`
	CreatedAt   time.Time       `json:"created_at"`
}
