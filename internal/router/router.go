// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/deppfellow/bookboard/internal/handler"
	"github.com/deppfellow/bookboard/internal/middleware"
	"github.com/deppfellow/bookboard/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with every middleware and route registered.
//
// Middleware order matters:
//  1. request id first, so every later log line can carry it
//  2. New Relic transaction, then the context logger that reads its trace ids
//  3. request logger, then recover so panics are logged as 500s
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	if middlewares.RateLimit.Enabled() {
		router.Use(middlewares.RateLimit.Limit())
	}

	registerSystemRoutes(router, h)
	registerBookRoutes(router, h)
	registerMessageRoutes(router, h)

	return router
}

func registerBookRoutes(r *echo.Echo, h *handler.Handlers) {
	books := r.Group("/books")

	books.GET("", handler.Handle(h.Book.Handler, h.Book.List, http.StatusOK, handler.NewListBooksRequest))
	books.POST("", handler.Handle(h.Book.Handler, h.Book.Create, http.StatusCreated, handler.NewCreateBooksRequest))
	books.GET("/id=:id", handler.Handle(h.Book.Handler, h.Book.Get, http.StatusOK, handler.NewBookIDRequest))
	books.PUT("/id=:id", handler.Handle(h.Book.Handler, h.Book.Update, http.StatusOK, handler.NewUpdateBookRequest))
	books.DELETE("/id=:id", handler.Handle(h.Book.Handler, h.Book.Delete, http.StatusOK, handler.NewBookIDRequest))
}

func registerMessageRoutes(r *echo.Echo, h *handler.Handlers) {
	messages := r.Group("/messages")

	messages.POST("", handler.Handle(h.Message.Handler, h.Message.Create, http.StatusCreated, handler.NewCreateMessageRequest))
	messages.GET("", handler.Handle(h.Message.Handler, h.Message.List, http.StatusOK, handler.NewListMessagesRequest))
}
