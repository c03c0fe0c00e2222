package deckcode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// maxPageBytes bounds how much of a deck page is read.
const maxPageBytes = 4 << 20

var codePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// ValidCode reports whether code is safe to place in a deck URL.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// Fetcher downloads deck pages. It only returns the body; hosts hand it to a
// Resolver.
type Fetcher struct {
	deckURL string
	client  *http.Client
}

// NewFetcher fetches from deckURL, a template holding {code}. A nil client
// uses http.DefaultClient.
func NewFetcher(deckURL string, client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if deckURL == "" {
		deckURL = DefaultDeckURL
	}
	return &Fetcher{deckURL: deckURL, client: client}
}

// URL builds the page address for code.
func (f *Fetcher) URL(code string) (string, error) {
	if !ValidCode(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	return strings.ReplaceAll(f.deckURL, "{code}", url.PathEscape(code)), nil
}

// Fetch downloads the deck page for code.
func (f *Fetcher) Fetch(ctx context.Context, code string) (string, error) {
	u, err := f.URL(code)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build deck request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{Code: code, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{Code: code, Err: fmt.Errorf("deck page returned %s", resp.Status)}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", &FetchError{Code: code, Err: fmt.Errorf("read deck page: %w", err)}
	}
	return string(body), nil
}
