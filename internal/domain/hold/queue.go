package hold

import (
	"sort"

	"library-circulation/internal/pkg/errs"
)

// NextPosition returns the queue position a new hold takes: one past the
// current active count.
func NextPosition(activeCount int32) int32 {
	return activeCount + 1
}

// Reindex assigns contiguous positions 1..N to the given active holds,
// ordered by placement time (hold id as a deterministic tie-break). It
// returns the holds whose position actually changed. Callers must run the
// whole result as one unit per book; a partial write breaks the
// contiguous-range invariant.
func Reindex(active []*Hold) ([]*Hold, error) {
	for _, h := range active {
		if h.status != StatusActive {
			return nil, errs.ErrInvariantViolation
		}
	}

	sorted := make([]*Hold, len(active))
	copy(sorted, active)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].placedAt.Equal(sorted[j].placedAt) {
			return sorted[i].id.String() < sorted[j].id.String()
		}
		return sorted[i].placedAt.Before(sorted[j].placedAt)
	})

	changed := make([]*Hold, 0, len(sorted))
	for i, h := range sorted {
		want := int32(i + 1)
		if h.position != want {
			h.position = want
			changed = append(changed, h)
		}
	}
	return changed, nil
}

// ValidatePositions checks that active positions form exactly {1..N}.
func ValidatePositions(active []*Hold) error {
	seen := make(map[int32]bool, len(active))
	for _, h := range active {
		if h.status != StatusActive {
			return errs.ErrInvariantViolation
		}
		p := h.position
		if p < 1 || p > int32(len(active)) || seen[p] {
			return errs.ErrInvariantViolation
		}
		seen[p] = true
	}
	return nil
}

// SelectNext picks the hold fulfillment should promote: smallest position,
// earliest placement on a tie. Returns nil when no active hold exists.
func SelectNext(active []*Hold) *Hold {
	var next *Hold
	for _, h := range active {
		if h.status != StatusActive {
			continue
		}
		if next == nil ||
			h.position < next.position ||
			(h.position == next.position && h.placedAt.Before(next.placedAt)) {
			next = h
		}
	}
	return next
}
