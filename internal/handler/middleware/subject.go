package middleware

import (
	"errors"
	"net/http"

	"library-circulation/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubjectHeader carries the acting subject's id. Authentication lives in
// the gateway in front of this service; the header is trusted as-is.
const SubjectHeader = "X-Subject-ID"

const subjectContextKey = "subject_id"

var errSubjectRequired = errors.New("subject header required")

// RequireSubject rejects requests without a well-formed subject id.
func RequireSubject() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SubjectHeader)
		if raw == "" {
			httperr.AbortWithError(c, http.StatusBadRequest, errSubjectRequired,
				"X-Subject-ID header is required", nil)
			return
		}

		subjectID, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err,
				"X-Subject-ID must be a valid UUID", nil)
			return
		}

		c.Set(subjectContextKey, subjectID)
		c.Next()
	}
}

func GetSubjectID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(subjectContextKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
