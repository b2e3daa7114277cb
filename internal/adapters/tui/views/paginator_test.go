package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginator_ScrollsWithCursor(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	for range 4 {
		p.CursorDown()
	}
	assert.Equal(t, 4, p.Cursor())
	start, end := p.VisibleRange()
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)

	assert.True(t, p.NextPage())
	start, end = p.VisibleRange()
	assert.Equal(t, 6, start)
	assert.Equal(t, 7, end)
	assert.False(t, p.NextPage())
	assert.False(t, p.CursorDown())
}

func TestPaginator_ShrinkClampsCursor(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(10)
	p.SetCursor(9)

	p.SetTotal(4)
	assert.Equal(t, 3, p.Cursor())

	p.SetTotal(0)
	assert.Equal(t, 0, p.Cursor())
	start, end := p.VisibleRange()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestPaginator_ResizeKeepsCursorVisible(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(30)
	p.SetCursor(25)

	p.SetPageSize(4)
	start, end := p.VisibleRange()
	assert.LessOrEqual(t, start, 25)
	assert.Greater(t, end, 25)
}
