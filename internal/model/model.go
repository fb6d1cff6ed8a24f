// Package model holds the records persisted in the resource files and the
// request shapes used to create or change them.
package model
