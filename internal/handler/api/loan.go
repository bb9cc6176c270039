package api

import (
	"context"
	"net/http"
	"strconv"

	"library-circulation/internal/domain/loan"
	reqdto "library-circulation/internal/handler/dto/request"
	resdto "library-circulation/internal/handler/dto/response"
	"library-circulation/internal/handler/httperr"
	"library-circulation/internal/handler/middleware"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LoanHandler struct {
	circulationCommands commands.CirculationCommands
	loanQueries         queries.LoanQueries
}

func NewLoanHandler(circulationCommands commands.CirculationCommands, loanQueries queries.LoanQueries) *LoanHandler {
	return &LoanHandler{
		circulationCommands: circulationCommands,
		loanQueries:         loanQueries,
	}
}

// Borrow is the self-serve checkout: the loan starts active immediately.
func (h *LoanHandler) Borrow(c *gin.Context) {
	h.createLoan(c, h.circulationCommands.BorrowDirect)
}

// RequestBorrow files a borrow request that staff must approve.
func (h *LoanHandler) RequestBorrow(c *gin.Context) {
	h.createLoan(c, h.circulationCommands.RequestBorrow)
}

// RequestReservation files a reservation request that staff must approve.
func (h *LoanHandler) RequestReservation(c *gin.Context) {
	h.createLoan(c, h.circulationCommands.RequestReservation)
}

func (h *LoanHandler) createLoan(c *gin.Context, create func(ctx context.Context, bookID, subjectID uuid.UUID) (*queries.LoanView, error)) {
	subjectID, ok := middleware.GetSubjectID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := create(c.Request.Context(), req.BookID, subjectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromLoanView(view))
}

// Approve routes to the kind-specific approval: activating a borrow or
// confirming a reservation. The acting subject is recorded as approver.
func (h *LoanHandler) Approve(c *gin.Context) {
	approverID, ok := middleware.GetSubjectID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid loan ID format", nil)
		return
	}

	current, err := h.loanQueries.GetByID(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, err)
		return
	}

	var view *queries.LoanView
	if current.Kind == loan.KindBorrow.String() {
		view, err = h.circulationCommands.ApproveBorrow(c.Request.Context(), loanID, approverID)
	} else {
		view, err = h.circulationCommands.ApproveReservation(c.Request.Context(), loanID, approverID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromLoanView(view))
}

func (h *LoanHandler) Reject(c *gin.Context) {
	approverID, ok := middleware.GetSubjectID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid loan ID format", nil)
		return
	}

	var req reqdto.RejectLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "A rejection reason is required", nil)
		return
	}

	current, err := h.loanQueries.GetByID(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, err)
		return
	}

	if current.Kind == loan.KindBorrow.String() {
		err = h.circulationCommands.RejectBorrow(c.Request.Context(), loanID, approverID, req.Reason)
	} else {
		err = h.circulationCommands.RejectReservation(c.Request.Context(), loanID, approverID, req.Reason)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *LoanHandler) Return(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid loan ID format", nil)
		return
	}

	if err := h.circulationCommands.ReturnBook(c.Request.Context(), loanID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *LoanHandler) Cancel(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid loan ID format", nil)
		return
	}

	if err := h.circulationCommands.Cancel(c.Request.Context(), loanID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *LoanHandler) Get(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid loan ID format", nil)
		return
	}

	view, err := h.loanQueries.GetByID(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromLoanView(view))
}

// ListMine returns the acting subject's loans, newest first.
func (h *LoanHandler) ListMine(c *gin.Context) {
	subjectID, ok := middleware.GetSubjectID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	views, err := h.loanQueries.ListBySubject(c.Request.Context(), subjectID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]*resdto.LoanResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromLoanView(v)
	}
	c.JSON(http.StatusOK, response)
}
