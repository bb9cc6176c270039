package hold

type Status string

const (
	StatusActive    Status = "active"
	StatusReady     Status = "ready"
	StatusFulfilled Status = "fulfilled"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusReady, StatusFulfilled, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the hold still blocks a duplicate hold by the
// same subject.
func (s Status) IsOpen() bool {
	return s == StatusActive || s == StatusReady
}
