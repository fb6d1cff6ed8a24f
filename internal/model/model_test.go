package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookInputBook(t *testing.T) {
	var in BookInput
	require.NoError(t, json.Unmarshal([]byte(`{"title": "Dune", "author": "Herbert", "year": 1965}`), &in))
	require.NoError(t, in.Validate())

	assert.Equal(t, Book{ID: 4, Title: "Dune", Author: "Herbert", Year: 1965, Available: true}, in.Book(4))

	unavailable := false
	in.Available = &unavailable
	assert.False(t, in.Book(4).Available)
}

func TestBookPatchApply(t *testing.T) {
	book := Book{ID: 1, Title: "t", Author: "a", Year: 1, Available: true}

	var patch BookPatch
	require.NoError(t, json.Unmarshal([]byte(`{"year": 2001, "available": false}`), &patch))
	patch.Apply(&book)

	assert.Equal(t, Book{ID: 1, Title: "t", Author: "a", Year: 2001, Available: false}, book)
}

func TestBookYearDecoding(t *testing.T) {
	tests := []struct {
		body    string
		want    *int
		wantErr bool
	}{
		{body: `{"year": 1965}`, want: intPtr(1965)},
		{body: `{"year": 1965.0}`, want: intPtr(1965)},
		{body: `{"year": 1.965e3}`, want: intPtr(1965)},
		{body: `{"year": null}`},
		{body: `{}`},
		{body: `{"year": 1965.5}`, wantErr: true},
		{body: `{"year": "1965"}`, wantErr: true},
	}

	for _, tt := range tests {
		var in BookInput
		err := json.Unmarshal([]byte(tt.body), &in)
		var patch BookPatch
		patchErr := json.Unmarshal([]byte(tt.body), &patch)

		if tt.wantErr {
			var typeErr *json.UnmarshalTypeError
			require.ErrorAs(t, err, &typeErr, tt.body)
			assert.Equal(t, "year", typeErr.Field, tt.body)
			assert.Error(t, patchErr, tt.body)
			continue
		}
		require.NoError(t, err, tt.body)
		require.NoError(t, patchErr, tt.body)
		assert.Equal(t, tt.want, in.Year, tt.body)
		assert.Equal(t, tt.want, patch.Year, tt.body)
	}
}

func TestBookInputOtherFieldsStillDecode(t *testing.T) {
	var in BookInput
	require.NoError(t, json.Unmarshal([]byte(`{"title": "Dune", "author": "Herbert", "year": 1965.0, "available": false}`), &in))
	require.NoError(t, in.Validate())
	assert.Equal(t, Book{ID: 1, Title: "Dune", Author: "Herbert", Year: 1965, Available: false}, in.Book(1))
}

func intPtr(i int) *int { return &i }

func TestMessageCreatedTime(t *testing.T) {
	tests := []struct {
		createdAt string
		want      time.Time
	}{
		{"2024-05-01T10:00:00.000000Z", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-05-01T12:00:00+02:00", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-05-01T10:00:00.5", time.Date(2024, 5, 1, 10, 0, 0, 500000000, time.UTC)},
	}

	for _, tt := range tests {
		got, err := Message{CreatedAt: tt.createdAt}.CreatedTime()
		require.NoError(t, err, tt.createdAt)
		assert.True(t, tt.want.Equal(got), tt.createdAt)
	}

	_, err := Message{CreatedAt: "yesterday"}.CreatedTime()
	assert.Error(t, err)
}
