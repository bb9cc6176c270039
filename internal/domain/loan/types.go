package loan

type Kind string

const (
	KindBorrow  Kind = "borrow"
	KindReserve Kind = "reserve"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindBorrow, KindReserve:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusApproved, StatusCompleted, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the loan still participates in circulation
// invariants (duplicate checks, borrow cap).
func (s Status) IsOpen() bool {
	switch s {
	case StatusPending, StatusActive, StatusApproved:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && !s.IsOpen()
}

// StockEffect is the ledger mutation a transition demands. Each transition
// yields exactly one effect, and a Reserve on entry is paired with exactly
// one Release on exit.
type StockEffect int

const (
	EffectNone StockEffect = iota
	EffectReserve
	EffectRelease
)
