package layout

import (
	"context"
	"fmt"
	"math"
	"slices"

	perrors "github.com/conneroisu/panelkit/internal/errors"
	"github.com/conneroisu/panelkit/internal/splitter"
)

// Group is an ordered row (or column) of regions sharing one size vector.
type Group struct {
	Key       string
	Direction Direction
	Regions   []Region

	initial []float64
}

// NewGroup creates a group. An empty direction means Horizontal.
func NewGroup(key string, direction Direction, regions ...Region) *Group {
	if direction == "" {
		direction = Horizontal
	}
	return &Group{
		Key:       key,
		Direction: direction,
		Regions:   regions,
	}
}

// WithInitial sets the size vector used when nothing was persisted for the
// group. Without it each sized region starts at its default size.
func (g *Group) WithInitial(sizes ...float64) *Group {
	g.initial = append([]float64(nil), sizes...)
	return g
}

// Initial returns the size vector used when nothing was persisted.
func (g *Group) Initial() []float64 {
	if g.initial != nil {
		return append([]float64(nil), g.initial...)
	}
	sized := g.sized()
	out := make([]float64, len(sized))
	for i, r := range sized {
		out[i] = r.DefaultSize
	}
	return out
}

// sized returns the regions that take part in the size vector. Invalid
// regions do not.
func (g *Group) sized() []Region {
	out := make([]Region, 0, len(g.Regions))
	for _, r := range g.Regions {
		if r.Sized() && r.Validate() == nil {
			out = append(out, r)
		}
	}
	return out
}

// SizedIDs returns the ids of the sized regions in order. A region without
// an id is named by its position in the vector.
func (g *Group) SizedIDs() []string {
	sized := g.sized()
	ids := make([]string, len(sized))
	for i, r := range sized {
		ids[i] = r.ID
		if ids[i] == "" {
			ids[i] = positionalID(i)
		}
	}
	return ids
}

// Panels returns the panel regions.
func (g *Group) Panels() []Region {
	var out []Region
	for _, r := range g.sized() {
		if r.Kind == KindPanel {
			out = append(out, r)
		}
	}
	return out
}

// Resolve assigns initial sizes to the sized regions. When the stored ids
// match the live ones, or none were stored, sizes are assigned by position;
// otherwise they are matched by id. A region left without a size gets its
// declared default. Extra sizes are ignored.
func (g *Group) Resolve(initial GroupSizes) []float64 {
	sized := g.sized()
	ids := g.SizedIDs()
	byID := initial.Keyed() && !slices.Equal(initial.IDs, ids)

	out := make([]float64, len(sized))
	for i, r := range sized {
		out[i] = r.DefaultSize
		if byID {
			if size, ok := initial.SizeFor(ids[i]); ok {
				out[i] = size
			}
			continue
		}
		if i < len(initial.Sizes) {
			out[i] = initial.Sizes[i]
		}
	}
	return out
}

// Placement is one child of an arranged group.
type Placement struct {
	Region Region
	// Sized is false for static and invalid regions, which render as given.
	Sized bool
	// Size is the region's share of the group in percent.
	Size float64
	// Open is the stored state for panels and true for content regions.
	Open bool
	// Err explains why a region was passed through instead of sized.
	Err error
}

// Arrange computes the first-paint layout: persisted (or initial) sizes are
// resolved onto the regions, then every panel is reconciled with its stored
// state so closed panels render collapsed and open ones expanded. It panics
// when ctx carries no Provider.
func (g *Group) Arrange(ctx context.Context) []Placement {
	p := MustFromContext(ctx, "Group")

	sized := g.sized()
	sizes := balance(sized, clampSizes(sized, g.Resolve(p.Layout(g.Key, g.Initial()))))

	split := splitter.New(nil)
	panes := make([]*splitter.Pane, len(sized))
	for i, r := range sized {
		panes[i] = split.Add(splitter.Constraints{
			Min:         r.MinSize,
			Default:     r.DefaultSize,
			Max:         r.MaxSize,
			Collapsible: r.Kind == KindPanel,
		})
	}
	split.SetSizes(sizes)

	for i, r := range sized {
		if r.Kind != KindPanel {
			continue
		}
		ctl := NewPanel(ctx, r)
		ctl.Bind(panes[i])
		ctl.Close()
	}
	final := split.Sizes()

	placements := make([]Placement, 0, len(g.Regions))
	next := 0
	for i, r := range g.Regions {
		if err := r.Validate(); err != nil {
			if p.Development() {
				p.Logger().Warn(ctx, err, "Passing through invalid layout region",
					"group", g.Key, "index", i)
			}
			placements = append(placements, Placement{Region: r, Err: err})
			continue
		}
		if !r.Sized() {
			placements = append(placements, Placement{Region: r})
			continue
		}
		placements = append(placements, Placement{
			Region: r,
			Sized:  true,
			Size:   final[next],
			Open:   r.Kind == KindContent || p.IsOpen(r.ID),
		})
		next++
	}
	return placements
}

// settleTolerance is how far a settled vector may drift from 100 to absorb
// client-side rounding.
const settleTolerance = 0.5

// Settle commits a size vector for the group, normally at the end of a
// drag. The vector must hold one size per sized region and sum to 100. A
// panel is either collapsed at 0 or within its bounds; no region may exceed
// its maximum.
func (g *Group) Settle(ctx context.Context, sizes []float64) error {
	p := MustFromContext(ctx, "Group")

	sized := g.sized()
	ids := g.SizedIDs()
	if len(sizes) != len(ids) {
		return perrors.NewValidationError(perrors.ErrCodeInvalidLayout,
			fmt.Sprintf("group %q expects %d sizes, got %d", g.Key, len(ids), len(sizes)))
	}
	var total float64
	for i, size := range sizes {
		if math.IsNaN(size) || size < 0 || size > 100 {
			return perrors.NewValidationError(perrors.ErrCodeInvalidLayout,
				fmt.Sprintf("group %q: size %v for %q out of range 0-100", g.Key, size, ids[i]))
		}
		r := sized[i]
		if r.Kind == KindPanel && size > 0 && size < r.MinSize {
			return perrors.NewValidationError(perrors.ErrCodeInvalidLayout,
				fmt.Sprintf("group %q: size %v for %q below its minimum %v", g.Key, size, ids[i], r.MinSize))
		}
		if size > r.MaxSize {
			return perrors.NewValidationError(perrors.ErrCodeInvalidLayout,
				fmt.Sprintf("group %q: size %v for %q above its maximum %v", g.Key, size, ids[i], r.MaxSize))
		}
		total += size
	}
	if math.Abs(total-100) > settleTolerance {
		return perrors.NewValidationError(perrors.ErrCodeInvalidLayout,
			fmt.Sprintf("group %q: sizes sum to %v, want 100", g.Key, total))
	}

	p.Settle(ctx, g.Key, GroupSizes{IDs: ids, Sizes: append([]float64(nil), sizes...)})
	return nil
}

// clampSizes holds open-sized panels within their bounds; zero stays zero so
// a persisted collapsed panel remains collapsed.
func clampSizes(regions []Region, sizes []float64) []float64 {
	out := append([]float64(nil), sizes...)
	for i, r := range regions {
		switch {
		case math.IsNaN(out[i]) || out[i] < 0:
			out[i] = r.DefaultSize
		case r.Kind == KindPanel && out[i] > 0:
			out[i] = math.Max(r.MinSize, math.Min(out[i], r.MaxSize))
		case out[i] > r.MaxSize:
			out[i] = r.MaxSize
		}
	}
	return out
}

// balance makes sizes sum to 100 by giving the difference to the first
// content region, or by scaling when the group has none.
func balance(regions []Region, sizes []float64) []float64 {
	var total float64
	for _, s := range sizes {
		total += s
	}
	diff := 100 - total
	if math.Abs(diff) < 1e-9 || total <= 0 {
		return sizes
	}
	for i, r := range regions {
		if r.Kind == KindContent {
			sizes[i] = math.Max(0, sizes[i]+diff)
			return sizes
		}
	}
	for i := range sizes {
		sizes[i] = sizes[i] * 100 / total
	}
	return sizes
}
