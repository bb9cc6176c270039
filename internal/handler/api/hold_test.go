//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"library-circulation/internal/domain/hold"
	"library-circulation/internal/handler/api"
	resdto "library-circulation/internal/handler/dto/response"
	"library-circulation/internal/handler/middleware"
	"library-circulation/internal/pkg/errs"
	"library-circulation/tests/common/builder"
	"library-circulation/tests/common/httptest"
	commandsmock "library-circulation/tests/mock/commands"
	queriesmock "library-circulation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HoldHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockHoldCommands
	mockQueries  *queriesmock.MockHoldQueries
	handler      *api.HoldHandler
	subjectID    uuid.UUID
}

func (s *HoldHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockHoldCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockHoldQueries(s.mockCtrl)
	s.handler = api.NewHoldHandler(s.mockCommands, s.mockQueries)
	s.subjectID = uuid.New()

	holds := s.router.Group("/api/holds")
	holds.Use(middleware.RequireSubject())
	holds.POST("", s.handler.Place)
	holds.POST("/:id/cancel", s.handler.Cancel)
	holds.POST("/:id/pickup", s.handler.Pickup)
	holds.GET("/:id", s.handler.Get)
}

func (s *HoldHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHoldHandlerSuite(t *testing.T) {
	suite.Run(t, new(HoldHandlerTestSuite))
}

// ================================================================================
// TestPlace
// ================================================================================

func (s *HoldHandlerTestSuite) TestPlace() {
	url := "/api/holds"

	reqBody := builder.NewHoldBuilder().BuildPlaceRequestDTO()
	returnView := builder.NewHoldBuilder().BuildView(hold.StatusActive)

	s.Run("success: returns 201 Created with the queued hold", func() {
		s.mockCommands.EXPECT().PlaceHold(gomock.Any(), reqBody.BookID, s.subjectID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.subjectID)

		var response resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.Position, response.Position)
		s.Equal(hold.StatusActive.String(), response.Status)
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
				name:           "duplicate hold",
				commandsError:  errs.ErrDuplicateHold,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already exists",
			},
			{
				name:           "borrow exclusion",
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
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().PlaceHold(gomock.Any(), reqBody.BookID, s.subjectID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.subjectID)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *HoldHandlerTestSuite) TestCancel() {
	holdID := uuid.New()
	url := "/api/holds/" + holdID.String() + "/cancel"

	s.Run("success: returns 204 No Content with a reason", func() {
		s.mockCommands.EXPECT().CancelHold(gomock.Any(), holdID, "found it elsewhere").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]string{"reason": "found it elsewhere"}, s.subjectID)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: the reason is optional", func() {
		s.mockCommands.EXPECT().CancelHold(gomock.Any(), holdID, "").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.subjectID)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for missing hold", func() {
		s.mockCommands.EXPECT().CancelHold(gomock.Any(), holdID, "").
			Return(errs.ErrHoldNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.subjectID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Hold not found")
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/holds/not-a-uuid/cancel", nil, s.subjectID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid hold ID")
	})
}

// ================================================================================
// TestPickup
// ================================================================================

func (s *HoldHandlerTestSuite) TestPickup() {
	holdID := uuid.New()
	url := "/api/holds/" + holdID.String() + "/pickup"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().MarkPickedUp(gomock.Any(), holdID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.subjectID)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict when the hold is not ready", func() {
		s.mockCommands.EXPECT().MarkPickedUp(gomock.Any(), holdID).
			Return(errs.ErrInvalidHoldState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.subjectID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not in a state")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *HoldHandlerTestSuite) TestGet() {
	holdID := uuid.New()
	url := "/api/holds/" + holdID.String()

	returnView := builder.NewHoldBuilder().BuildView(hold.StatusReady)
	returnView.ID = holdID

	s.Run("success: returns 200 OK with HoldResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), holdID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.subjectID)

		var response resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(holdID, response.ID)
		s.Equal(hold.StatusReady.String(), response.Status)
	})

	s.Run("error: 404 Not Found for missing hold", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), holdID).
			Return(nil, errs.ErrHoldNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.subjectID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Hold not found")
	})
}
