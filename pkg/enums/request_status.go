package enums

import "fmt"

// RequestStatus tracks a product request through review.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	// The API spells it with a double L.
	RequestStatusFulfilled RequestStatus = "FULLFILLED"
)

var validRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusApproved,
	RequestStatusRejected,
	RequestStatusFulfilled,
}

// String implements fmt.Stringer.
func (v RequestStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known RequestStatus.
func (v RequestStatus) IsValid() bool {
	for _, candidate := range validRequestStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// RequestStatuses returns every RequestStatus in display order.
func RequestStatuses() []RequestStatus {
	return append([]RequestStatus(nil), validRequestStatuses...)
}

// ParseRequestStatus converts raw input into a RequestStatus.
func ParseRequestStatus(value string) (RequestStatus, error) {
	for _, candidate := range validRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request status %q", value)
}
