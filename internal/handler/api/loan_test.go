//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"library-circulation/internal/domain/loan"
	"library-circulation/internal/handler/api"
	resdto "library-circulation/internal/handler/dto/response"
	"library-circulation/internal/handler/middleware"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/queries"
	"library-circulation/tests/common/builder"
	"library-circulation/tests/common/httptest"
	commandsmock "library-circulation/tests/mock/commands"
	queriesmock "library-circulation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LoanHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCirculationCommands
	mockQueries  *queriesmock.MockLoanQueries
	handler      *api.LoanHandler
	subjectID    uuid.UUID
}

func (s *LoanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCirculationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockLoanQueries(s.mockCtrl)
	s.handler = api.NewLoanHandler(s.mockCommands, s.mockQueries)
	s.subjectID = uuid.New()

	loans := s.router.Group("/api/loans")
	loans.Use(middleware.RequireSubject())
	loans.POST("/borrow", s.handler.Borrow)
	loans.POST("/borrow-requests", s.handler.RequestBorrow)
	loans.POST("/reservation-requests", s.handler.RequestReservation)
	loans.POST("/:id/approve", s.handler.Approve)
	loans.POST("/:id/reject", s.handler.Reject)
	loans.POST("/:id/return", s.handler.Return)
	loans.POST("/:id/cancel", s.handler.Cancel)
	loans.GET("/:id", s.handler.Get)
	loans.GET("", s.handler.ListMine)
}

func (s *LoanHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLoanHandlerSuite(t *testing.T) {
	suite.Run(t, new(LoanHandlerTestSuite))
}

// ================================================================================
// TestBorrow
// ================================================================================

func (s *LoanHandlerTestSuite) TestBorrow() {
	url := "/api/loans/borrow"

	reqBody := builder.NewLoanBuilder().BuildCreateRequestDTO()
	returnView := builder.NewLoanBuilder().BuildView(loan.StatusActive)

	s.Run("success: returns 201 Created with the active loan", func() {
		s.mockCommands.EXPECT().BorrowDirect(gomock.Any(), reqBody.BookID, s.subjectID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.subjectID)

		var response resdto.LoanResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(loan.StatusActive.String(), response.Status)
	})

	s.Run("error: 400 Bad Request without subject header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, uuid.Nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "X-Subject-ID")
	})

	s.Run("error: 400 Bad Request when bookId is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, s.subjectID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "out of stock",
				commandsError:  errs.ErrOutOfStock,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "No copies available",
			},
			{
				name:           "borrow cap reached",
				commandsError:  errs.ErrBorrowLimitExceeded,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Active loan limit reached",
			},
			{
				name:           "duplicate open loan",
				commandsError:  errs.ErrDuplicateLoan,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already exists",
			},
			{
				name:           "hold exclusion",
				commandsError:  errs.ErrHoldBorrowExclusion,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already holds or borrows",
			},
			{
				name:           "book missing",
				commandsError:  errs.ErrBookNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Book not found",
			},
			{
				name:           "internal error",
				commandsError:  errors.New("connection reset"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().BorrowDirect(gomock.Any(), reqBody.BookID, s.subjectID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.subjectID)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *LoanHandlerTestSuite) TestRequestBorrow() {
	url := "/api/loans/borrow-requests"

	reqBody := builder.NewLoanBuilder().BuildCreateRequestDTO()
	returnView := builder.NewLoanBuilder().BuildView(loan.StatusPending)

	s.Run("success: returns 201 Created with the pending loan", func() {
		s.mockCommands.EXPECT().RequestBorrow(gomock.Any(), reqBody.BookID, s.subjectID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.subjectID)

		var response resdto.LoanResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(loan.StatusPending.String(), response.Status)
		s.Nil(response.DueAt)
	})
}

// ================================================================================
// TestApprove
// ================================================================================

func (s *LoanHandlerTestSuite) TestApprove() {
	loanID := uuid.New()
	url := "/api/loans/" + loanID.String() + "/approve"

	s.Run("success: borrow is routed to borrow approval", func() {
		pending := builder.NewLoanBuilder().BuildView(loan.StatusPending)
		pending.ID = loanID
		approved := builder.NewLoanBuilder().BuildView(loan.StatusActive)
		approved.ID = loanID

		s.mockQueries.EXPECT().GetByID(gomock.Any(), loanID).
			Return(pending, nil).Times(1)
		s.mockCommands.EXPECT().ApproveBorrow(gomock.Any(), loanID, s.subjectID).
			Return(approved, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.subjectID)

		var response resdto.LoanResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(loan.StatusActive.String(), response.Status)
	})

	s.Run("success: reservation is routed to reservation approval", func() {
		pending := builder.NewLoanBuilder().
			With(func(b *builder.LoanBuilder) { b.Kind = loan.KindReserve }).
			BuildView(loan.StatusPending)
		pending.ID = loanID
		approved := builder.NewLoanBuilder().
			With(func(b *builder.LoanBuilder) { b.Kind = loan.KindReserve }).
			BuildView(loan.StatusApproved)
		approved.ID = loanID

		s.mockQueries.EXPECT().GetByID(gomock.Any(), loanID).
			Return(pending, nil).Times(1)
		s.mockCommands.EXPECT().ApproveReservation(gomock.Any(), loanID, s.subjectID).
			Return(approved, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.subjectID)

		var response resdto.LoanResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(loan.StatusApproved.String(), response.Status)
	})

	s.Run("error: 404 Not Found for missing loan", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), loanID).
			Return(nil, errs.ErrLoanNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.subjectID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Loan not found")
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/loans/not-a-uuid/approve", nil, s.subjectID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid loan ID")
	})
}

// ================================================================================
// TestReject
// ================================================================================

func (s *LoanHandlerTestSuite) TestReject() {
	loanID := uuid.New()
	url := "/api/loans/" + loanID.String() + "/reject"

	pending := builder.NewLoanBuilder().BuildView(loan.StatusPending)
	pending.ID = loanID

	s.Run("success: returns 204 No Content", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), loanID).
			Return(pending, nil).Times(1)
		s.mockCommands.EXPECT().RejectBorrow(gomock.Any(), loanID, s.subjectID, "damaged copy").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]string{"reason": "damaged copy"}, s.subjectID)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request without a reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{}, s.subjectID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "rejection reason")
	})

	s.Run("error: 409 Conflict when the loan is not pending", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), loanID).
			Return(pending, nil).Times(1)
		s.mockCommands.EXPECT().RejectBorrow(gomock.Any(), loanID, s.subjectID, "too late").
			Return(errs.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]string{"reason": "too late"}, s.subjectID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not in a state")
	})
}

// ================================================================================
// TestReturn / TestCancel
// ================================================================================

func (s *LoanHandlerTestSuite) TestReturn() {
	loanID := uuid.New()
	url := "/api/loans/" + loanID.String() + "/return"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().ReturnBook(gomock.Any(), loanID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.subjectID)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict on a completed loan", func() {
		s.mockCommands.EXPECT().ReturnBook(gomock.Any(), loanID).
			Return(errs.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.subjectID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *LoanHandlerTestSuite) TestCancel() {
	loanID := uuid.New()
	url := "/api/loans/" + loanID.String() + "/cancel"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), loanID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.subjectID)
		s.Equal(http.StatusNoContent, rec.Code)
	})
}

// ================================================================================
// TestListMine
// ================================================================================

func (s *LoanHandlerTestSuite) TestListMine() {
	url := "/api/loans"

	s.Run("success: returns the subject's loans with the default limit", func() {
		v1 := builder.NewLoanBuilder().BuildView(loan.StatusActive)
		v2 := builder.NewLoanBuilder().BuildView(loan.StatusCompleted)

		s.mockQueries.EXPECT().ListBySubject(gomock.Any(), s.subjectID, 50).
			Return([]*queries.LoanView{v1, v2}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.subjectID)

		var response []resdto.LoanResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal(v1.ID, response[0].ID)
	})

	s.Run("success: explicit limit is passed through", func() {
		s.mockQueries.EXPECT().ListBySubject(gomock.Any(), s.subjectID, 10).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=10", nil, s.subjectID)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}
