package model

import (
	"encoding/json"
	"math"
	"reflect"

	"github.com/deppfellow/bookboard/internal/validation"
)

// Book is a catalogued book. Available defaults to true.
type Book struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	Available bool   `json:"available"`
}

// UnmarshalJSON decodes a stored book, treating a missing "available" key as true.
func (b *Book) UnmarshalJSON(data []byte) error {
	type rawBook Book
	raw := rawBook{Available: true}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Book(raw)
	return nil
}

// BookInput is the request shape for creating a book.
//
// Pointers distinguish an absent key from a zero value: only presence is
// required, so {"title": ""} is accepted. A null value reads as absent.
type BookInput struct {
	Title     *string `json:"title" validate:"required"`
	Author    *string `json:"author" validate:"required"`
	Year      *int    `json:"year" validate:"required"`
	Available *bool   `json:"available"`
}

// UnmarshalJSON decodes in, accepting a whole-number float such as 1965.0 for year.
func (in *BookInput) UnmarshalJSON(data []byte) error {
	type plain BookInput
	aux := struct {
		*plain
		Year *wholeNumber `json:"year"`
	}{plain: (*plain)(in)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	in.Year = aux.Year.intPtr()
	return nil
}

// Validate reports every missing required key.
func (in BookInput) Validate() error {
	return validation.Struct(in)
}

// Book builds the record for in under id.
func (in BookInput) Book(id int64) Book {
	book := Book{
		ID:        id,
		Title:     *in.Title,
		Author:    *in.Author,
		Year:      *in.Year,
		Available: true,
	}
	if in.Available != nil {
		book.Available = *in.Available
	}
	return book
}

// BookPatch is the request shape for a partial update; nil fields are left unchanged.
type BookPatch struct {
	Title     *string `json:"title"`
	Author    *string `json:"author"`
	Year      *int    `json:"year"`
	Available *bool   `json:"available"`
}

// UnmarshalJSON decodes p, accepting a whole-number float such as 1965.0 for year.
func (p *BookPatch) UnmarshalJSON(data []byte) error {
	type plain BookPatch
	aux := struct {
		*plain
		Year *wholeNumber `json:"year"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Year = aux.Year.intPtr()
	return nil
}

// Apply overwrites the supplied fields of b.
func (p BookPatch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Year != nil {
		b.Year = *p.Year
	}
	if p.Available != nil {
		b.Available = *p.Available
	}
}

// wholeNumber is a JSON number with no fractional part.
type wholeNumber int

func (n *wholeNumber) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*n = wholeNumber(i)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil || f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(0)}
	}
	*n = wholeNumber(f)
	return nil
}

func (n *wholeNumber) intPtr() *int {
	if n == nil {
		return nil
	}
	i := int(*n)
	return &i
}
