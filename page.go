package balala

type (
	// PageRow selects one page: PageNumber starts at 1.
	PageRow struct {
		PageNumber int
		PageSize   int
	}

	// Page is one page of rows plus the totals of the whole result.
	Page[T any] struct {
		TotalCount int64
		PageNumber int
		PageSize   int
		PageCount  int64
		Rows       []T
	}
)

// Offset returns the number of rows before the page.
func (r PageRow) Offset() int {
	if r.PageNumber < 1 {
		return 0
	}
	return (r.PageNumber - 1) * r.PageSize
}

func (r PageRow) normalize() (PageRow, error) {
	if r.PageSize < 1 {
		return r, ErrInvalidPage
	}
	if r.PageNumber < 1 {
		r.PageNumber = 1
	}
	return r, nil
}

// NewPage builds a page and computes PageCount as the ceiling of
// TotalCount / PageSize.
func NewPage[T any](row PageRow, totalCount int64, rows []T) *Page[T] {
	p := &Page[T]{
		TotalCount: totalCount,
		PageNumber: row.PageNumber,
		PageSize:   row.PageSize,
		Rows:       rows,
	}
	if row.PageSize > 0 {
		size := int64(row.PageSize)
		p.PageCount = (totalCount + size - 1) / size
	}
	return p
}

// IsFirst reports whether p is the first page.
func (p *Page[T]) IsFirst() bool { return p.PageNumber <= 1 }

// IsLast reports whether p is the last page.
func (p *Page[T]) IsLast() bool { return int64(p.PageNumber) >= p.PageCount }

// HasPrev reports whether a page comes before p.
func (p *Page[T]) HasPrev() bool { return !p.IsFirst() }

// HasNext reports whether a page comes after p.
func (p *Page[T]) HasNext() bool { return !p.IsLast() }

// PrevPage returns the previous page number, 1 on the first page.
func (p *Page[T]) PrevPage() int {
	if p.IsFirst() {
		return 1
	}
	return p.PageNumber - 1
}

// NextPage returns the next page number, the current one on the last page.
func (p *Page[T]) NextPage() int {
	if p.IsLast() {
		return p.PageNumber
	}
	return p.PageNumber + 1
}

// mapPage converts the rows of a page keeping its totals.
func mapPage[T, R any](p *Page[T], fn func(T) (R, error)) (*Page[R], error) {
	rows := make([]R, 0, len(p.Rows))
	for _, row := range p.Rows {
		r, err := fn(row)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return &Page[R]{
		TotalCount: p.TotalCount,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		PageCount:  p.PageCount,
		Rows:       rows,
	}, nil
}
