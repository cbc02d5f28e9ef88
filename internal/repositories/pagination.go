package repositories

// DefaultPageSize is used when a caller does not ask for a specific page size.
const DefaultPageSize = 6

// MaxPageSize bounds the page size a caller may request.
const MaxPageSize = 100

// Page selects a 1-based page of results.
type Page struct {
	Number int
	Size   int
}

// Normalize returns a copy of the page with out-of-range values replaced by defaults.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	p = p.Normalize()
	return (p.Number - 1) * p.Size
}

// Limit is the number of rows in this page.
func (p Page) Limit() int {
	return p.Normalize().Size
}
