package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/deppfellow/bookboard/internal/errs"
	"github.com/deppfellow/bookboard/internal/model"
	"github.com/deppfellow/bookboard/internal/response"
	"github.com/deppfellow/bookboard/internal/server"
	"github.com/deppfellow/bookboard/internal/service"
	"github.com/deppfellow/bookboard/internal/validation"
	"github.com/labstack/echo/v4"
)

const (
	defaultPage  = 1
	defaultLimit = 999
)

// MessageHandler serves the /messages routes.
type MessageHandler struct {
	Handler
	messages *service.MessageService
}

func NewMessageHandler(s *server.Server, messages *service.MessageService) *MessageHandler {
	return &MessageHandler{
		Handler:  NewHandler(s),
		messages: messages,
	}
}

// CreateMessageRequest must be a non-empty JSON object.
type CreateMessageRequest struct {
	input model.MessageInput
}

func NewCreateMessageRequest() *CreateMessageRequest { return &CreateMessageRequest{} }

func (r *CreateMessageRequest) Bind(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return errs.NewInvalidJSONError("Request body must be a valid JSON object.")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return errs.NewInvalidJSONError("Request body must be a valid JSON object.")
	}

	return validation.DecodeObject(body, &r.input)
}

func (r *CreateMessageRequest) Validate() error {
	return r.input.Validate()
}

// ListMessagesRequest binds ?page=&limit=, both positive integers.
type ListMessagesRequest struct {
	page  int
	limit int
}

func NewListMessagesRequest() *ListMessagesRequest {
	return &ListMessagesRequest{page: defaultPage, limit: defaultLimit}
}

func (r *ListMessagesRequest) Bind(c echo.Context) error {
	query := c.QueryParams()

	for _, param := range []struct {
		name string
		dst  *int
	}{
		{"page", &r.page},
		{"limit", &r.limit},
	} {
		if !query.Has(param.name) {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(query.Get(param.name)))
		if err != nil || v < 1 {
			return errs.NewBadRequestError("Query params page and limit must be positive integers.", errs.CodeInvalidParams)
		}
		*param.dst = v
	}

	return nil
}

// Create handles POST /messages.
func (h *MessageHandler) Create(c echo.Context, req *CreateMessageRequest) (*response.Envelope, error) {
	message, err := h.messages.Create(c.Request().Context(), req.input)
	if err != nil {
		return nil, validation.ToHTTPError(err)
	}

	return response.Success().
		WithData(message).
		WithMessage("Message posted successfully."), nil
}

// List handles GET /messages, most recent first.
func (h *MessageHandler) List(c echo.Context, req *ListMessagesRequest) (*response.Envelope, error) {
	messages, total, err := h.messages.List(c.Request().Context(), req.page, req.limit)
	if err != nil {
		return nil, validation.ToHTTPError(err)
	}

	pagination := response.NewPagination(total, req.page, req.limit)
	if !pagination.InRange() {
		return nil, errs.NewOutOfRangeError(
			fmt.Sprintf("Page %d out of range. Total pages: %d.", req.page, pagination.TotalPages),
			pagination,
		)
	}

	return response.Success().
		WithData(messages).
		WithPagination(pagination), nil
}
