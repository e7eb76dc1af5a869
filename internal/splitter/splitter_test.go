package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(sizes []float64) float64 {
	var total float64
	for _, s := range sizes {
		total += s
	}
	return total
}

func TestAddUsesDefaults(t *testing.T) {
	l := New(nil)
	l.Add(Constraints{Min: 20, Default: 25, Max: 30, Collapsible: true})
	l.Add(Constraints{Min: 70, Default: 75, Max: 100})

	assert.Equal(t, []float64{25, 75}, l.Sizes())
}

func TestConstraintsNormalized(t *testing.T) {
	l := New(nil)
	p := l.Add(Constraints{Min: 50, Default: 10, Max: 200})

	c := p.Constraints()
	assert.Equal(t, 100.0, c.Max)
	assert.Equal(t, 50.0, c.Default)
}

func TestCollapseAndExpand(t *testing.T) {
	var committed [][]float64
	l := New(func(sizes []float64) { committed = append(committed, sizes) })

	var collapses, expands int
	nav := l.Add(Constraints{Min: 20, Default: 25, Max: 30, Collapsible: true},
		OnCollapse(func() { collapses++ }),
		OnExpand(func() { expands++ }),
	)
	content := l.Add(Constraints{Min: 70, Default: 75, Max: 100})
	l.SetSizes([]float64{28, 72})

	nav.Collapse()
	assert.True(t, nav.IsCollapsed())
	assert.Equal(t, 0.0, nav.Size())
	assert.Equal(t, 100.0, content.Size())
	assert.Equal(t, 1, collapses)

	nav.Collapse()
	assert.Equal(t, 1, collapses, "collapsing a collapsed pane does nothing")

	nav.Expand()
	assert.False(t, nav.IsCollapsed())
	assert.Equal(t, 28.0, nav.Size(), "expand restores the size before collapsing")
	assert.Equal(t, 72.0, content.Size())
	assert.Equal(t, 1, expands)

	require.Len(t, committed, 2)
	assert.Equal(t, []float64{0, 100}, committed[0])
	assert.Equal(t, []float64{28, 72}, committed[1])
}

func TestExpandFromZeroUsesDefault(t *testing.T) {
	l := New(nil)
	content := l.Add(Constraints{Min: 60, Default: 60, Max: 100})
	right := l.Add(Constraints{Min: 30, Default: 35, Max: 35, Collapsible: true})
	l.SetSizes([]float64{100, 0})

	require.True(t, right.IsCollapsed())
	right.Expand()

	assert.Equal(t, 35.0, right.Size())
	assert.Equal(t, 65.0, content.Size())
}

func TestNonCollapsibleIgnoresCollapse(t *testing.T) {
	l := New(nil)
	p := l.Add(Constraints{Min: 20, Default: 50, Max: 80})
	l.Add(Constraints{Min: 20, Default: 50, Max: 80})

	p.Collapse()
	assert.False(t, p.IsCollapsed())
	assert.Equal(t, 50.0, p.Size())
}

func TestResizeClampsAndKeepsTotal(t *testing.T) {
	l := New(nil)
	left := l.Add(Constraints{Min: 25, Default: 30, Max: 35, Collapsible: true})
	content := l.Add(Constraints{Min: 30, Default: 40, Max: 100})
	right := l.Add(Constraints{Min: 25, Default: 30, Max: 35, Collapsible: true})

	left.Resize(50)
	assert.Equal(t, 35.0, left.Size())
	assert.Equal(t, 35.0, content.Size())
	assert.InDelta(t, 100, sum(l.Sizes()), 1e-9)

	left.Resize(5)
	assert.Equal(t, 25.0, left.Size(), "non-zero sizes clamp to the minimum")

	right.Resize(0)
	assert.True(t, right.IsCollapsed())
	assert.InDelta(t, 100, sum(l.Sizes()), 1e-9)
}

func TestDragShrinksAndCollapses(t *testing.T) {
	var sizes []float64
	l := New(func(s []float64) { sizes = s })

	var live []float64
	nav := l.Add(Constraints{Min: 20, Default: 25, Max: 30, Collapsible: true},
		OnResize(func(size float64) { live = append(live, size) }),
	)
	l.Add(Constraints{Min: 70, Default: 75, Max: 100})

	require.True(t, l.BeginDrag(0))
	assert.True(t, l.Dragging())

	l.Drag(-3)
	assert.Equal(t, 22.0, nav.Size())

	l.Drag(-8)
	assert.Equal(t, 20.0, nav.Size(), "between half the minimum and the minimum clamps")

	l.Drag(-20)
	assert.True(t, nav.IsCollapsed())
	assert.Nil(t, sizes, "nothing is committed while dragging")

	l.EndDrag()
	assert.False(t, l.Dragging())
	assert.Equal(t, []float64{0, 100}, sizes)
	assert.Equal(t, []float64{22, 20, 0}, live)
}

func TestDragGrowsUpToMax(t *testing.T) {
	l := New(nil)
	nav := l.Add(Constraints{Min: 20, Default: 25, Max: 30, Collapsible: true})
	content := l.Add(Constraints{Min: 70, Default: 75, Max: 100})

	require.True(t, l.BeginDrag(0))
	l.Drag(40)
	l.EndDrag()

	assert.Equal(t, 30.0, nav.Size())
	assert.Equal(t, 70.0, content.Size())
}

func TestDragOpensCollapsedPanePastHalfMinimum(t *testing.T) {
	l := New(nil)
	content := l.Add(Constraints{Min: 60, Default: 60, Max: 100})
	right := l.Add(Constraints{Min: 30, Default: 35, Max: 35, Collapsible: true})
	l.SetSizes([]float64{100, 0})

	require.True(t, l.BeginDrag(0))
	l.Drag(-10)
	assert.True(t, right.IsCollapsed())

	l.Drag(-20)
	assert.Equal(t, 30.0, right.Size())
	assert.Equal(t, 70.0, content.Size())
	l.EndDrag()
}

func TestBeginDragRejectsInvalidHandle(t *testing.T) {
	l := New(nil)
	l.Add(Constraints{Default: 100})

	assert.False(t, l.BeginDrag(0))
	assert.False(t, l.BeginDrag(-1))

	l.Drag(10)
	l.EndDrag()
	assert.Equal(t, []float64{100}, l.Sizes())
}

func TestResizeInsideCallbackDuringDrag(t *testing.T) {
	var committed []float64
	l := New(func(s []float64) { committed = s })

	var nav *Pane
	nav = l.Add(Constraints{Min: 20, Default: 25, Max: 30, Collapsible: true},
		OnResize(func(size float64) {
			if l.Dragging() && size < 20 {
				nav.Resize(20)
			}
		}),
	)
	l.Add(Constraints{Min: 70, Default: 75, Max: 100})

	require.True(t, l.BeginDrag(0))
	l.Drag(-24)
	assert.Nil(t, committed)
	assert.Equal(t, 20.0, nav.Size())

	l.EndDrag()
	assert.Equal(t, []float64{20, 80}, committed)
}
