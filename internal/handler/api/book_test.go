//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"library-circulation/internal/domain/hold"
	"library-circulation/internal/handler/api"
	resdto "library-circulation/internal/handler/dto/response"
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

type BookHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockCommands    *commandsmock.MockCatalogCommands
	mockQueries     *queriesmock.MockBookQueries
	mockHoldQueries *queriesmock.MockHoldQueries
	handler         *api.BookHandler
}

func (s *BookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCatalogCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookQueries(s.mockCtrl)
	s.mockHoldQueries = queriesmock.NewMockHoldQueries(s.mockCtrl)
	s.handler = api.NewBookHandler(s.mockCommands, s.mockQueries, s.mockHoldQueries)

	books := s.router.Group("/api/books")
	books.POST("", s.handler.Register)
	books.GET("/:id", s.handler.Get)
	books.GET("/:id/holds", s.handler.ListHolds)
	books.GET("/by-accession/:accession", s.handler.GetByAccession)
}

func (s *BookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookHandlerTestSuite))
}

func (s *BookHandlerTestSuite) TestRegister() {
	url := "/api/books"

	reqBody := builder.NewBookBuilder().BuildRegisterRequestDTO()
	returnView := builder.NewBookBuilder().BuildView()

	s.Run("success: returns 201 Created with the assigned accession number", func() {
		s.mockCommands.EXPECT().RegisterBook(gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, uuid.Nil)

		var response resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.AccessionNumber, response.AccessionNumber)
		s.Equal(returnView.TotalCopies, response.TotalCopies)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name string
			body map[string]any
		}{
			{name: "missing title", body: map[string]any{"callNumber": "005.133", "totalCopies": 1}},
			{name: "missing call number", body: map[string]any{"title": "Dune", "totalCopies": 1}},
			{name: "zero copies", body: map[string]any{"title": "Dune", "callNumber": "823 HER", "totalCopies": 0}},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, tc.body, uuid.Nil)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})
}

func (s *BookHandlerTestSuite) TestGet() {
	bookID := uuid.New()
	url := "/api/books/" + bookID.String()

	returnView := builder.NewBookBuilder().BuildView()
	returnView.ID = bookID

	s.Run("success: returns 200 OK with BookResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, uuid.Nil)

		var response resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookID, response.ID)
	})

	s.Run("error: 404 Not Found for missing book", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookID).
			Return(nil, errs.ErrBookNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, uuid.Nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Book not found")
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books/not-a-uuid", nil, uuid.Nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid book ID")
	})
}

func (s *BookHandlerTestSuite) TestGetByAccession() {
	returnView := builder.NewBookBuilder().BuildView()
	url := "/api/books/by-accession/" + returnView.AccessionNumber

	s.Run("success: resolves the accession number", func() {
		s.mockQueries.EXPECT().GetByAccession(gomock.Any(), returnView.AccessionNumber).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, uuid.Nil)

		var response resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.AccessionNumber, response.AccessionNumber)
	})
}

func (s *BookHandlerTestSuite) TestListHolds() {
	bookID := uuid.New()
	url := "/api/books/" + bookID.String() + "/holds"

	s.Run("success: returns the queue in position order", func() {
		v1 := builder.NewHoldBuilder().BuildView(hold.StatusActive)
		v2 := builder.NewHoldBuilder().
			With(func(b *builder.HoldBuilder) { b.Position = 2 }).
			BuildView(hold.StatusActive)

		s.mockHoldQueries.EXPECT().ListActiveByBook(gomock.Any(), bookID).
			Return([]*queries.HoldView{v1, v2}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, uuid.Nil)

		var response []resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal(int32(1), response[0].Position)
		s.Equal(int32(2), response[1].Position)
	})

	s.Run("success: empty queue yields an empty list", func() {
		s.mockHoldQueries.EXPECT().ListActiveByBook(gomock.Any(), bookID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, uuid.Nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}
