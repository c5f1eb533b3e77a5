package document

import "fmt"

// Pages is the read surface a cursor navigates over.
type Pages interface {
	PageCount() int
	PageText(pageIndex int) string
	PageImage(pageIndex int) (string, error)
}

// PageCursor owns navigation state over one document. The current page is a
// 0-based index kept inside [0, totalPages) by clamping, never by erroring:
// an autonomous caller that overshoots lands on a boundary page instead of
// aborting the run.
type PageCursor struct {
	doc     Pages
	current int
	total   int
}

// NewCursor builds a cursor positioned on the first page.
func NewCursor(doc Pages) *PageCursor {
	total := doc.PageCount()
	if total < 1 {
		total = 1
	}
	return &PageCursor{doc: doc, total: total}
}

// Next moves to the next page, clamping at the last page.
func (c *PageCursor) Next() string {
	c.current = min(c.current+1, c.total-1)
	return c.status()
}

// Previous moves to the previous page, clamping at the first page.
func (c *PageCursor) Previous() string {
	c.current = max(c.current-1, 0)
	return c.status()
}

// GoTo moves to the given 1-based page number, clamping out-of-range
// requests (including zero and negatives) into the valid range.
func (c *PageCursor) GoTo(pageNumber int) string {
	c.current = min(max(pageNumber-1, 0), c.total-1)
	return c.status()
}

// Page returns the current page as a 1-based number.
func (c *PageCursor) Page() int {
	return c.current + 1
}

// TotalPages returns the page count the cursor was constructed with.
func (c *PageCursor) TotalPages() int {
	return c.total
}

// CurrentText returns the extracted text of the current page.
func (c *PageCursor) CurrentText() string {
	return c.doc.PageText(c.current)
}

// CurrentImage renders the current page. Render failures are the document
// boundary's errors, passed through unchanged.
func (c *PageCursor) CurrentImage() (string, error) {
	return c.doc.PageImage(c.current)
}

func (c *PageCursor) status() string {
	if text := c.doc.PageText(c.current); text != "" {
		return fmt.Sprintf("Switched to page %d. Page text: %s", c.current+1, text)
	}
	return fmt.Sprintf("Switched to page %d.", c.current+1)
}
