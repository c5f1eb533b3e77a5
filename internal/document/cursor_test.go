package document

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePages drives the cursor without a real PDF.
type fakePages struct {
	texts    []string
	imageErr error
}

func (f *fakePages) PageCount() int { return len(f.texts) }

func (f *fakePages) PageText(pageIndex int) string {
	if pageIndex < 0 || pageIndex >= len(f.texts) {
		return ""
	}
	return f.texts[pageIndex]
}

func (f *fakePages) PageImage(pageIndex int) (string, error) {
	if f.imageErr != nil {
		return "", f.imageErr
	}
	return fmt.Sprintf("data:image/png;base64,page-%d", pageIndex), nil
}

func blankPages(n int) *fakePages {
	return &fakePages{texts: make([]string, n)}
}

func TestCursorStartsOnFirstPage(t *testing.T) {
	cursor := NewCursor(blankPages(3))

	assert.Equal(t, 1, cursor.Page())
	assert.Equal(t, 3, cursor.TotalPages())
}

func TestCursorClamping(t *testing.T) {
	tests := []struct {
		name     string
		ops      func(c *PageCursor)
		wantPage int
	}{
		{
			name:     "next stays within bounds",
			ops:      func(c *PageCursor) { c.Next(); c.Next() },
			wantPage: 3,
		},
		{
			name: "next clamps at last page",
			ops: func(c *PageCursor) {
				for i := 0; i < 10; i++ {
					c.Next()
				}
			},
			wantPage: 3,
		},
		{
			name:     "previous clamps at first page",
			ops:      func(c *PageCursor) { c.Previous(); c.Previous() },
			wantPage: 1,
		},
		{
			name:     "go to clamps above range",
			ops:      func(c *PageCursor) { c.GoTo(99) },
			wantPage: 3,
		},
		{
			name:     "go to clamps zero",
			ops:      func(c *PageCursor) { c.GoTo(0) },
			wantPage: 1,
		},
		{
			name:     "go to clamps negative",
			ops:      func(c *PageCursor) { c.GoTo(-5) },
			wantPage: 1,
		},
		{
			name:     "go to in range",
			ops:      func(c *PageCursor) { c.GoTo(2) },
			wantPage: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor := NewCursor(blankPages(3))
			tt.ops(cursor)

			assert.Equal(t, tt.wantPage, cursor.Page())
			assert.GreaterOrEqual(t, cursor.Page(), 1)
			assert.LessOrEqual(t, cursor.Page(), cursor.TotalPages())
		})
	}
}

// Jumping to a page must land exactly where stepping there one page at a
// time would.
func TestCursorGoToMatchesStepping(t *testing.T) {
	const total = 5
	for start := 1; start <= total; start++ {
		for target := -1; target <= total+2; target++ {
			jumped := NewCursor(blankPages(total))
			jumped.GoTo(start)
			jumped.GoTo(target)

			stepped := NewCursor(blankPages(total))
			stepped.GoTo(start)
			for stepped.Page() < target && stepped.Page() < total {
				stepped.Next()
			}
			for stepped.Page() > target && stepped.Page() > 1 {
				stepped.Previous()
			}

			require.Equal(t, stepped.Page(), jumped.Page(),
				"start %d target %d", start, target)
		}
	}
}

func TestCursorStatusIncludesPageText(t *testing.T) {
	cursor := NewCursor(&fakePages{texts: []string{"intro", "budget table", ""}})

	assert.Equal(t, "Switched to page 2. Page text: budget table", cursor.Next())
	assert.Equal(t, "Switched to page 3.", cursor.Next())
	assert.Equal(t, "Switched to page 3.", cursor.Next())
}

func TestCursorEmptyDocumentHasOnePage(t *testing.T) {
	cursor := NewCursor(blankPages(0))

	assert.Equal(t, 1, cursor.Page())
	assert.Equal(t, 1, cursor.TotalPages())
	assert.Equal(t, "Switched to page 1.", cursor.Next())
}

func TestCursorCurrentImageError(t *testing.T) {
	wantErr := errors.New("render broke")
	cursor := NewCursor(&fakePages{texts: make([]string, 2), imageErr: wantErr})

	_, err := cursor.CurrentImage()
	require.ErrorIs(t, err, wantErr)
}

func TestCursorCurrentText(t *testing.T) {
	cursor := NewCursor(&fakePages{texts: []string{"first", "second"}})

	assert.Equal(t, "first", cursor.CurrentText())
	cursor.Next()
	assert.Equal(t, "second", cursor.CurrentText())
}
