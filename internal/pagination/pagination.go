package pagination

import "strconv"

// Filter is the validated page request. A nil Filter means "no pagination":
// the full result set is returned without an envelope.
type Filter struct {
	PageNumber int
	PageSize   int
}

// FromQuery derives a Filter from raw query parameters. Absent or
// non-numeric values yield nil, which callers treat as an unpaginated request.
func FromQuery(pageNumber, pageSize string) *Filter {
	if pageNumber == "" && pageSize == "" {
		return nil
	}

	n, err := strconv.Atoi(pageNumber)
	if err != nil {
		return nil
	}
	s, err := strconv.Atoi(pageSize)
	if err != nil {
		return nil
	}

	return &Filter{PageNumber: n, PageSize: s}
}

// Offset returns the skip/take window for the filter.
func (f *Filter) Offset() (skip, take int) {
	return (f.PageNumber - 1) * f.PageSize, f.PageSize
}

// Valid reports whether the filter describes a real page window.
func (f *Filter) Valid() bool {
	return f != nil && f.PageNumber >= 1 && f.PageSize >= 1
}
