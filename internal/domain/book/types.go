package book

// Status is derived from the copy counts; it is never stored as an
// authoritative field.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusUnavailable:
		return true
	default:
		return false
	}
}
