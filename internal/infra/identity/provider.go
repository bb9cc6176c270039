package identity

import (
	"context"

	"library-circulation/internal/usecase/shared"

	"github.com/google/uuid"
)

// PassthroughProvider derives a display name from the subject id itself.
// Subjects are managed by an external system this service only references;
// deployments with a directory swap in a resolving adapter.
type PassthroughProvider struct{}

func NewPassthroughProvider() *PassthroughProvider {
	return &PassthroughProvider{}
}

func (p *PassthroughProvider) ResolveSubject(_ context.Context, subjectID uuid.UUID) (shared.SubjectInfo, error) {
	return shared.SubjectInfo{DisplayName: "subject-" + subjectID.String()[:8]}, nil
}

var _ shared.IdentityProvider = (*PassthroughProvider)(nil)
