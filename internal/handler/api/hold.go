package api

import (
	"net/http"

	reqdto "library-circulation/internal/handler/dto/request"
	resdto "library-circulation/internal/handler/dto/response"
	"library-circulation/internal/handler/httperr"
	"library-circulation/internal/handler/middleware"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HoldHandler struct {
	holdCommands commands.HoldCommands
	holdQueries  queries.HoldQueries
}

func NewHoldHandler(holdCommands commands.HoldCommands, holdQueries queries.HoldQueries) *HoldHandler {
	return &HoldHandler{
		holdCommands: holdCommands,
		holdQueries:  holdQueries,
	}
}

func (h *HoldHandler) Place(c *gin.Context) {
	subjectID, ok := middleware.GetSubjectID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.PlaceHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.holdCommands.PlaceHold(c.Request.Context(), req.BookID, subjectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromHoldView(view))
}

func (h *HoldHandler) Cancel(c *gin.Context) {
	holdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid hold ID format", nil)
		return
	}

	// Reason is optional; an empty body is fine.
	var req reqdto.CancelHoldRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.holdCommands.CancelHold(c.Request.Context(), holdID, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Pickup records that the subject collected a ready hold.
func (h *HoldHandler) Pickup(c *gin.Context) {
	holdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid hold ID format", nil)
		return
	}

	if err := h.holdCommands.MarkPickedUp(c.Request.Context(), holdID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HoldHandler) Get(c *gin.Context) {
	holdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid hold ID format", nil)
		return
	}

	view, err := h.holdQueries.GetByID(c.Request.Context(), holdID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromHoldView(view))
}
