package middleware

import (
	"net/http"
	"testing"

	"github.com/deppfellow/bookboard/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name       string
		written    int
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "success", written: http.StatusCreated, wantStatus: http.StatusCreated},
		{name: "envelope error", written: http.StatusOK, err: errs.NewNotFoundError("Book with id=1 not found."), wantStatus: http.StatusNotFound, wantCode: errs.CodeNotFound},
		{name: "wrapped envelope error", written: http.StatusOK, err: errors.Wrap(errs.NewTooManyRequestsError("slow down"), "limit"), wantStatus: http.StatusTooManyRequests, wantCode: errs.CodeTooManyRequests},
		{name: "echo error", written: http.StatusOK, err: echo.ErrMethodNotAllowed, wantStatus: http.StatusMethodNotAllowed, wantCode: errs.CodeMethodNotAllowed},
		{name: "unknown error", written: http.StatusOK, err: errors.New("disk full"), wantStatus: http.StatusInternalServerError, wantCode: errs.CodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := outcome(tt.written, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestRouteResource(t *testing.T) {
	assert.Equal(t, "books", routeResource("/books"))
	assert.Equal(t, "books", routeResource("/books/id=:id"))
	assert.Equal(t, "messages", routeResource("/messages"))
	assert.Equal(t, "none", routeResource(""))
	assert.Equal(t, "none", routeResource("/"))
}
