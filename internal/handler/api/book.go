package api

import (
	"net/http"

	reqdto "library-circulation/internal/handler/dto/request"
	resdto "library-circulation/internal/handler/dto/response"
	"library-circulation/internal/handler/httperr"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookHandler struct {
	catalogCommands commands.CatalogCommands
	bookQueries     queries.BookQueries
	holdQueries     queries.HoldQueries
}

func NewBookHandler(
	catalogCommands commands.CatalogCommands,
	bookQueries queries.BookQueries,
	holdQueries queries.HoldQueries,
) *BookHandler {
	return &BookHandler{
		catalogCommands: catalogCommands,
		bookQueries:     bookQueries,
		holdQueries:     holdQueries,
	}
}

func (h *BookHandler) Register(c *gin.Context) {
	var req reqdto.RegisterBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.catalogCommands.RegisterBook(c.Request.Context(), commands.RegisterBookInput{
		Title:       req.Title,
		CallNumber:  req.CallNumber,
		TotalCopies: req.TotalCopies,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookView(view))
}

func (h *BookHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book ID format", nil)
		return
	}

	view, err := h.bookQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookView(view))
}

func (h *BookHandler) GetByAccession(c *gin.Context) {
	view, err := h.bookQueries.GetByAccession(c.Request.Context(), c.Param("accession"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookView(view))
}

// ListHolds returns the book's active queue in position order.
func (h *BookHandler) ListHolds(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book ID format", nil)
		return
	}

	views, err := h.holdQueries.ListActiveByBook(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]*resdto.HoldResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromHoldView(v)
	}
	c.JSON(http.StatusOK, response)
}
