package views

// Paginator keeps a cursor and the page of rows around it
type Paginator struct {
	pageSize   int
	pageOffset int
	cursor     int
	totalItems int
}

// NewPaginator creates a new paginator with the given page size
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Paginator{pageSize: pageSize}
}

// SetPageSize changes the number of rows per page, keeping the cursor visible
func (p *Paginator) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	p.pageSize = size
	p.ensureCursorInPage()
}

// SetTotal sets the number of rows, clamping the cursor
func (p *Paginator) SetTotal(total int) {
	p.totalItems = total
	p.SetCursor(p.cursor)
}

// Cursor returns the current cursor position (absolute index)
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor, clamped to the rows
func (p *Paginator) SetCursor(pos int) {
	if pos >= p.totalItems {
		pos = p.totalItems - 1
	}
	if pos < 0 {
		pos = 0
	}
	p.cursor = pos
	p.ensureCursorInPage()
}

// End moves the cursor to the last row
func (p *Paginator) End() {
	p.SetCursor(p.totalItems - 1)
}

// CursorUp moves the cursor up by one
func (p *Paginator) CursorUp() bool {
	if p.cursor > 0 {
		p.SetCursor(p.cursor - 1)
		return true
	}
	return false
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor < p.totalItems-1 {
		p.SetCursor(p.cursor + 1)
		return true
	}
	return false
}

// VisibleRange returns the start and end indices for the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.pageOffset
	end = min(p.pageOffset+p.pageSize, p.totalItems)
	return
}

// TotalPages returns the total number of pages
func (p *Paginator) TotalPages() int {
	if p.totalItems == 0 {
		return 1
	}
	return (p.totalItems + p.pageSize - 1) / p.pageSize
}

// CurrentPage returns the current page number (1-based)
func (p *Paginator) CurrentPage() int {
	return p.pageOffset/p.pageSize + 1
}

// NextPage moves to the first row of the next page
func (p *Paginator) NextPage() bool {
	if p.pageOffset+p.pageSize < p.totalItems {
		p.SetCursor(p.pageOffset + p.pageSize)
		return true
	}
	return false
}

// PrevPage moves to the first row of the previous page
func (p *Paginator) PrevPage() bool {
	if p.pageOffset > 0 {
		p.SetCursor(max(p.pageOffset-p.pageSize, 0))
		return true
	}
	return false
}

func (p *Paginator) ensureCursorInPage() {
	if p.cursor < p.pageOffset || p.cursor >= p.pageOffset+p.pageSize {
		p.pageOffset = (p.cursor / p.pageSize) * p.pageSize
	}
}
