package model

// InvocationStatus represents the status of a host bridge command invocation
type InvocationStatus string

const (
	// StatusPending means the invocation was received but the handler has not started
	StatusPending InvocationStatus = "Pending"

	// StatusRunning means the handler is executing
	StatusRunning InvocationStatus = "Running"

	// StatusCompleted means the handler returned a result
	StatusCompleted InvocationStatus = "Completed"

	// StatusError means the handler or argument decoding failed
	StatusError InvocationStatus = "Error"
)

// String returns the string representation of InvocationStatus
func (s InvocationStatus) String() string {
	return string(s)
}

// IsActive returns true if the invocation has not finished yet
func (s InvocationStatus) IsActive() bool {
	return s == StatusPending || s == StatusRunning
}

// IsFinished returns true if the invocation completed or failed
func (s InvocationStatus) IsFinished() bool {
	return s == StatusCompleted || s == StatusError
}
