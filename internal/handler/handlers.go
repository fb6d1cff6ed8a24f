package handler

import (
	"github.com/deppfellow/bookboard/internal/server"
	"github.com/deppfellow/bookboard/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
//
// The router receives this one object instead of every handler separately.
type Handlers struct {
	Health  *HealthHandler  // Health serves /status.
	OpenAPI *OpenAPIHandler // OpenAPI serves the docs UI.
	Book    *BookHandler
	Message *MessageHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Book:    NewBookHandler(s, services.Books),
		Message: NewMessageHandler(s, services.Messages),
	}
}
