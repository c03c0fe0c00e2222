package deckcode

import (
	"errors"
	"fmt"
)

// ErrNoCatalog means the page carried none of the card catalog assignments,
// usually because the code was unknown and the site served an error page.
var ErrNoCatalog = errors.New("no card catalog in page")

// ErrInvalidCode rejects a deck code before any request is made.
var ErrInvalidCode = errors.New("invalid deck code")

// ParseError reports a page the resolver could not read.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("deckcode: parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FetchError reports a deck page that could not be downloaded.
type FetchError struct {
	Code string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch deck %s: %v", e.Code, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
