package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/deppfellow/bookboard/internal/errs"
	"github.com/deppfellow/bookboard/internal/model"
	"github.com/deppfellow/bookboard/internal/response"
	"github.com/deppfellow/bookboard/internal/server"
	"github.com/deppfellow/bookboard/internal/service"
	"github.com/deppfellow/bookboard/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookHandler serves the /books routes.
type BookHandler struct {
	Handler
	books *service.BookService
}

func NewBookHandler(s *server.Server, books *service.BookService) *BookHandler {
	return &BookHandler{
		Handler: NewHandler(s),
		books:   books,
	}
}

// --- Request shapes ----------------------------------------------------------

// ListBooksRequest carries nothing; GET /books takes no input.
type ListBooksRequest struct{}

func NewListBooksRequest() *ListBooksRequest { return &ListBooksRequest{} }

func (r *ListBooksRequest) Bind(c echo.Context) error { return nil }

// CreateBooksRequest is either a single book object or a list of them.
type CreateBooksRequest struct {
	bulk   bool
	single model.BookInput
	batch  []model.BookInput
}

func NewCreateBooksRequest() *CreateBooksRequest { return &CreateBooksRequest{} }

func (r *CreateBooksRequest) Bind(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}

	switch body[0] {
	case '{':
		return validation.DecodeObject(body, &r.single)

	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return errs.NewInvalidJSONError("Request body must be valid JSON.")
		}

		r.bulk = true
		r.batch = make([]model.BookInput, 0, len(items))
		for idx, item := range items {
			var in model.BookInput
			if err := validation.DecodeObject(item, &in); err != nil {
				var violations validation.Violations
				if errors.As(err, &violations) && violations.Has(validation.InvalidInput) {
					return validation.Violations{validation.Input(fmt.Sprintf("Item #%d is not a JSON object.", idx+1))}
				}
				if errors.As(err, &violations) {
					return violations.ForItem(idx + 1)
				}
				return err
			}
			r.batch = append(r.batch, in)
		}
		return nil

	default:
		return errs.NewInvalidJSONError("Request body must be a JSON object or list.")
	}
}

// BookIDRequest binds the id in /books/id=:id.
type BookIDRequest struct {
	id int64
}

func NewBookIDRequest() *BookIDRequest { return &BookIDRequest{} }

func (r *BookIDRequest) Bind(c echo.Context) error {
	id, err := parseBookID(c)
	if err != nil {
		return err
	}
	r.id = id
	return nil
}

// UpdateBookRequest is the id plus a partial book object.
type UpdateBookRequest struct {
	id    int64
	patch model.BookPatch
}

func NewUpdateBookRequest() *UpdateBookRequest { return &UpdateBookRequest{} }

func (r *UpdateBookRequest) Bind(c echo.Context) error {
	id, err := parseBookID(c)
	if err != nil {
		return err
	}
	r.id = id

	body, err := readBody(c)
	if err != nil {
		return err
	}
	if body[0] != '{' {
		return errs.NewInvalidJSONError("Request body must be a JSON object.")
	}
	return validation.DecodeObject(body, &r.patch)
}

// parseBookID reads the :id path param. Anything but a non-negative integer
// is treated like an unmatched route.
func parseBookID(c echo.Context) (int64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil {
		return 0, errs.NewNotFoundError("Route not found")
	}
	return int64(id), nil
}

// readBody returns the trimmed request body, or INVALID_JSON when it is
// empty or not well-formed JSON.
func readBody(c echo.Context) ([]byte, error) {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, errors.Wrap(err, "read request body")
	}

	body := bytes.TrimSpace(raw)
	if len(body) == 0 || !json.Valid(body) {
		return nil, errs.NewInvalidJSONError("Request body must be valid JSON.")
	}
	return body, nil
}

// --- Endpoints ---------------------------------------------------------------

// List handles GET /books.
func (h *BookHandler) List(c echo.Context, _ *ListBooksRequest) (*response.Envelope, error) {
	books, err := h.books.List(c.Request().Context())
	if err != nil {
		return nil, err
	}

	env := response.Success().WithData(books)
	if len(books) == 0 {
		env = env.WithMessage("No books available.")
	}
	return env, nil
}

// Create handles POST /books, for a single object or a list.
func (h *BookHandler) Create(c echo.Context, req *CreateBooksRequest) (*response.Envelope, error) {
	ctx := c.Request().Context()

	if req.bulk {
		created, err := h.books.BulkCreate(ctx, req.batch)
		if err != nil {
			return nil, validation.ToHTTPError(err)
		}
		return response.Success().
			WithData(created).
			WithMessage(fmt.Sprintf("%d books created successfully.", len(created))), nil
	}

	book, err := h.books.Create(ctx, req.single)
	if err != nil {
		return nil, validation.ToHTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("%s/%d", requestURL(c), book.ID))
	return response.Success().
		WithData(book).
		WithMessage("Book created successfully."), nil
}

// Get handles GET /books/id=:id.
func (h *BookHandler) Get(c echo.Context, req *BookIDRequest) (*response.Envelope, error) {
	book, found, err := h.books.GetByID(c.Request().Context(), req.id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, bookNotFound(req.id)
	}
	return response.Success().WithData(book), nil
}

// Update handles PUT /books/id=:id.
func (h *BookHandler) Update(c echo.Context, req *UpdateBookRequest) (*response.Envelope, error) {
	book, found, err := h.books.Update(c.Request().Context(), req.id, req.patch)
	if err != nil {
		return nil, validation.ToHTTPError(err)
	}
	if !found {
		return nil, bookNotFound(req.id)
	}
	return response.Success().
		WithData(book).
		WithMessage("Book updated successfully."), nil
}

// Delete handles DELETE /books/id=:id.
func (h *BookHandler) Delete(c echo.Context, req *BookIDRequest) (*response.Envelope, error) {
	removed, err := h.books.Delete(c.Request().Context(), req.id)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, bookNotFound(req.id)
	}
	return response.Success().WithMessage("Book deleted successfully."), nil
}

func bookNotFound(id int64) error {
	return errs.NewNotFoundError(fmt.Sprintf("Book with id=%d not found.", id))
}

// requestURL is the absolute URL of the current request without a trailing slash.
func requestURL(c echo.Context) string {
	return strings.TrimRight(c.Scheme()+"://"+c.Request().Host+c.Request().RequestURI, "/")
}
