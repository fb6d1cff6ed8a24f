package response

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name               string
		total, page, limit int
		totalPages         int
		hasPrev, hasNext   bool
		inRange            bool
	}{
		{name: "empty collection has one page", total: 0, page: 1, limit: 999, totalPages: 1, inRange: true},
		{name: "empty collection page two", total: 0, page: 2, limit: 10, totalPages: 1, hasPrev: true, inRange: false},
		{name: "exact fit", total: 4, page: 1, limit: 2, totalPages: 2, hasNext: true, inRange: true},
		{name: "middle page", total: 5, page: 2, limit: 2, totalPages: 3, hasPrev: true, hasNext: true, inRange: true},
		{name: "last partial page", total: 5, page: 3, limit: 2, totalPages: 3, hasPrev: true, inRange: true},
		{name: "past the end", total: 5, page: 4, limit: 2, totalPages: 3, hasPrev: true, inRange: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.inRange, p.InRange())
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 1, 9, 30, 0, 123456789, time.FixedZone("CET", 3600))
	assert.Equal(t, "2025-03-01T08:30:00.123456Z", FormatTimestamp(ts))
}

func decode(t *testing.T, env *Envelope) map[string]any {
	t.Helper()

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestEnvelopeJSON(t *testing.T) {
	Now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { Now = time.Now })

	t.Run("success without data only has the base keys", func(t *testing.T) {
		out := decode(t, Success().WithMessage("Book deleted successfully."))
		assert.Equal(t, map[string]any{
			"success":   true,
			"timestamp": "2025-01-02T03:04:05.000000Z",
			"message":   "Book deleted successfully.",
		}, out)
	})

	t.Run("list data sets total", func(t *testing.T) {
		out := decode(t, Success().WithData([]int{}))
		assert.Equal(t, []any{}, out["data"])
		assert.Equal(t, float64(0), out["total"])
		assert.NotContains(t, out, "message")
		assert.NotContains(t, out, "page")
	})

	t.Run("object data has no total", func(t *testing.T) {
		out := decode(t, Success().WithData(map[string]int{"id": 1}))
		assert.NotContains(t, out, "total")
	})

	t.Run("pagination overrides total and keeps false flags", func(t *testing.T) {
		out := decode(t, Success().WithData([]int{1}).WithPagination(NewPagination(3, 1, 1)))
		assert.Equal(t, float64(3), out["total"])
		assert.Equal(t, float64(1), out["page"])
		assert.Equal(t, float64(1), out["limit"])
		assert.Equal(t, float64(3), out["total_pages"])
		assert.Equal(t, false, out["has_prev"])
		assert.Equal(t, true, out["has_next"])
	})

	t.Run("failure", func(t *testing.T) {
		out := decode(t, Failure("NOT_FOUND", "Route not found"))
		assert.Equal(t, false, out["success"])
		assert.Equal(t, "NOT_FOUND", out["error_code"])
		assert.Equal(t, "Route not found", out["message"])
		assert.NotContains(t, out, "data")
	})
}
