// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or maximum lengths) defined in struct tags
// and turns failures into tagged Violations (missing field,
// too long, invalid value, invalid input) that handlers map
// onto the response envelope.
package validation
