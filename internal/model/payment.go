package model

// PaymentStatus is shared by students and sessions.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "Pending"
	PaymentSuccessful PaymentStatus = "Successful"
)

func (p PaymentStatus) Valid() bool {
	return p == PaymentPending || p == PaymentSuccessful
}
