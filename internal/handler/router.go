package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-circulation/internal/handler/api"
	"library-circulation/internal/handler/middleware"
	"library-circulation/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, bookHandler *api.BookHandler, loanHandler *api.LoanHandler, holdHandler *api.HoldHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookHandler, loanHandler, holdHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, bookHandler *api.BookHandler, loanHandler *api.LoanHandler, holdHandler *api.HoldHandler) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		books := apiGroup.Group("/books")
		{
			addRoutes(books, []route{
				{Method: http.MethodPost, Path: "", Handler: bookHandler.Register},
				{Method: http.MethodGet, Path: "/:id", Handler: bookHandler.Get},
				{Method: http.MethodGet, Path: "/:id/holds", Handler: bookHandler.ListHolds},
				{Method: http.MethodGet, Path: "/by-accession/:accession", Handler: bookHandler.GetByAccession},
			})
		}

		loans := apiGroup.Group("/loans")
		loans.Use(middleware.RequireSubject())
		{
			addRoutes(loans, []route{
				{Method: http.MethodPost, Path: "/borrow", Handler: loanHandler.Borrow},
				{Method: http.MethodPost, Path: "/borrow-requests", Handler: loanHandler.RequestBorrow},
				{Method: http.MethodPost, Path: "/reservation-requests", Handler: loanHandler.RequestReservation},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: loanHandler.Approve},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: loanHandler.Reject},
				{Method: http.MethodPost, Path: "/:id/return", Handler: loanHandler.Return},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: loanHandler.Cancel},
				{Method: http.MethodGet, Path: "/:id", Handler: loanHandler.Get},
				{Method: http.MethodGet, Path: "", Handler: loanHandler.ListMine},
			})
		}

		holds := apiGroup.Group("/holds")
		holds.Use(middleware.RequireSubject())
		{
			addRoutes(holds, []route{
				{Method: http.MethodPost, Path: "", Handler: holdHandler.Place},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: holdHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/pickup", Handler: holdHandler.Pickup},
				{Method: http.MethodGet, Path: "/:id", Handler: holdHandler.Get},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
