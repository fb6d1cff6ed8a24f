// Package response builds the uniform JSON envelope returned by every endpoint.
//
//	{success, timestamp, data?, message?, error_code?, total?, page?, limit?,
//	 total_pages?, has_prev?, has_next?}
//
// Handlers build success envelopes; the global error handler builds failure
// envelopes from *errs.HTTPError. Nothing else writes response bodies.
package response

import (
	"reflect"
	"time"
)

// TimestampLayout is the ISO-8601 UTC layout used for envelope timestamps
// and message created_at values, e.g. 2025-03-01T09:30:00.123456Z.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Now is the clock used for envelope timestamps.
var Now = time.Now

// Envelope is the JSON wrapper for all responses.
//
// Optional fields are pointers so that zero values (total=0, has_prev=false)
// are still written when set, and left out entirely when not.
type Envelope struct {
	Success    bool   `json:"success"`
	Timestamp  string `json:"timestamp"`
	Data       any    `json:"data,omitempty"`
	Total      *int   `json:"total,omitempty"`
	Page       *int   `json:"page,omitempty"`
	Limit      *int   `json:"limit,omitempty"`
	TotalPages *int   `json:"total_pages,omitempty"`
	HasPrev    *bool  `json:"has_prev,omitempty"`
	HasNext    *bool  `json:"has_next,omitempty"`
	ErrorCode  string `json:"error_code,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Pagination is the metadata attached to paginated list responses.
type Pagination struct {
	Total      int
	Page       int
	Limit      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// NewPagination computes the pagination block for a 1-based page.
//
// total_pages is ceil(total/limit), and 1 for an empty collection so that
// page 1 is always in range.
func NewPagination(total, page, limit int) Pagination {
	totalPages := 1
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// InRange reports whether Page points at an existing page.
func (p Pagination) InRange() bool {
	return p.Page <= p.TotalPages
}

func newEnvelope(success bool) *Envelope {
	return &Envelope{
		Success:   success,
		Timestamp: FormatTimestamp(Now()),
	}
}

// Success starts a successful envelope.
func Success() *Envelope {
	return newEnvelope(true)
}

// Failure starts a failed envelope carrying an error code.
func Failure(code, message string) *Envelope {
	env := newEnvelope(false)
	env.ErrorCode = code
	env.Message = message
	return env
}

// WithData sets data. Slices also set total to their length, which a later
// WithPagination call overrides with the full collection size.
func (e *Envelope) WithData(data any) *Envelope {
	e.Data = data
	if v := reflect.ValueOf(data); v.Kind() == reflect.Slice {
		total := v.Len()
		e.Total = &total
	}
	return e
}

// WithMessage sets message; an empty message is left out of the JSON.
func (e *Envelope) WithMessage(message string) *Envelope {
	e.Message = message
	return e
}

// WithPagination attaches the full pagination block.
func (e *Envelope) WithPagination(p Pagination) *Envelope {
	e.Total = &p.Total
	e.Page = &p.Page
	e.Limit = &p.Limit
	e.TotalPages = &p.TotalPages
	e.HasPrev = &p.HasPrev
	e.HasNext = &p.HasNext
	return e
}

// FormatTimestamp renders t in UTC with microsecond precision and a Z suffix.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
