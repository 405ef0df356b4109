package blog

import (
	"errors"
	"strconv"
	"strings"
)

const DefaultPageSize = 10

// Page is a 1-indexed slice of an ordered result sequence.
type Page[T any] struct {
	Items    []T
	Number   int
	Size     int
	NumPages int
	Count    int
}

func (p Page[T]) HasNext() bool     { return p.Number < p.NumPages }
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }
func (p Page[T]) NextNumber() int   { return p.Number + 1 }

func (p Page[T]) PreviousNumber() int { return p.Number - 1 }

// Paginate returns the requested page of items. An empty number means the
// first page; a number past the end is clamped to the last page. A number
// that is not an integer or is below 1 yields ErrInvalidPage.
func Paginate[T any](items []T, pageSize int, number string) (Page[T], error) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	n, numPages, err := pageNumber(number, len(items), pageSize)
	if err != nil {
		return Page[T]{}, err
	}

	start := (n - 1) * pageSize
	end := min(start+pageSize, len(items))

	return Page[T]{
		Items:    items[start:end],
		Number:   n,
		Size:     pageSize,
		NumPages: numPages,
		Count:    len(items),
	}, nil
}

// pageNumber resolves the raw page number against count items split into
// pages of pageSize. Positive numbers too large for an int are clamped like
// any other number past the end.
func pageNumber(number string, count, pageSize int) (n, numPages int, err error) {
	numPages = (count + pageSize - 1) / pageSize
	if numPages == 0 {
		numPages = 1
	}

	n = 1
	if number = strings.TrimSpace(number); number != "" {
		parsed, err := strconv.Atoi(number)
		switch {
		case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(number, "-"):
			parsed = numPages
		case err != nil, parsed < 1:
			return 0, 0, ErrInvalidPage
		}
		n = parsed
	}

	return min(n, numPages), numPages, nil
}
