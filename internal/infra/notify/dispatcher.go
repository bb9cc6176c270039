package notify

import (
	"context"
	"log/slog"

	"library-circulation/internal/usecase/shared"

	"github.com/google/uuid"
)

// LogDispatcher is the default delivery adapter: it writes the notification
// to the structured log. A real mail or push gateway replaces it behind the
// same port.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) Notify(_ context.Context, subjectID uuid.UUID, template string, context map[string]any) error {
	slog.Info("notification dispatched",
		"subject_id", subjectID,
		"template", template,
		"context", context)
	return nil
}

var _ shared.NotificationDispatcher = (*LogDispatcher)(nil)
