package layout

import (
	"fmt"
	"math"
)

// Default sizes, in percent of the group, for panels and content regions
// that do not declare their own.
const (
	DefaultPanelMin    = 20
	DefaultPanelSize   = 25
	DefaultPanelMax    = 30
	DefaultContentMin  = 70
	DefaultContentSize = 75
	DefaultContentMax  = 100
)

// Direction is the axis a group splits along.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

// Side places a panel's handle and border.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Kind distinguishes the children of a group.
type Kind int

const (
	// KindStatic children are decorations that take no part in sizing.
	KindStatic Kind = iota
	// KindPanel children are named, collapsible side panels.
	KindPanel
	// KindContent children are flexible regions that absorb the space
	// panels give up.
	KindContent
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindPanel:
		return "panel"
	case KindContent:
		return "content"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Region describes one child of a group.
type Region struct {
	Kind Kind
	ID   string
	Side Side

	MinSize     float64
	DefaultSize float64
	MaxSize     float64

	// CollapseOnResize lets a drag past the collapse threshold close the
	// panel in the store instead of flooring it at MinSize.
	CollapseOnResize bool
	// DisableTransition turns off the open/close animation.
	DisableTransition bool
}

// PanelRegion returns a side panel with the default panel sizes.
func PanelRegion(id string, side Side) Region {
	return Region{
		Kind:        KindPanel,
		ID:          id,
		Side:        side,
		MinSize:     DefaultPanelMin,
		DefaultSize: DefaultPanelSize,
		MaxSize:     DefaultPanelMax,
	}
}

// ContentRegion returns a content region with the default content sizes.
// The id may be empty.
func ContentRegion(id string) Region {
	return Region{
		Kind:        KindContent,
		ID:          id,
		MinSize:     DefaultContentMin,
		DefaultSize: DefaultContentSize,
		MaxSize:     DefaultContentMax,
	}
}

// StaticRegion returns a child that is passed through without a size.
func StaticRegion(id string) Region {
	return Region{Kind: KindStatic, ID: id}
}

// WithSizes returns a copy of r with the given bounds.
func (r Region) WithSizes(minSize, defaultSize, maxSize float64) Region {
	r.MinSize, r.DefaultSize, r.MaxSize = minSize, defaultSize, maxSize
	return r
}

// WithCollapseOnResize returns a copy of r that closes when dragged shut.
func (r Region) WithCollapseOnResize() Region {
	r.CollapseOnResize = true
	return r
}

// Sized reports whether r takes part in the group's size vector.
func (r Region) Sized() bool {
	return r.Kind == KindPanel || r.Kind == KindContent
}

// Validate reports why a region cannot be sized.
func (r Region) Validate() error {
	switch r.Kind {
	case KindStatic:
		return nil
	case KindPanel:
		if r.ID == "" {
			return fmt.Errorf("panel region without an id")
		}
	case KindContent:
	default:
		return fmt.Errorf("unknown region kind %s", r.Kind)
	}
	for _, v := range []float64{r.MinSize, r.DefaultSize, r.MaxSize} {
		if math.IsNaN(v) || v < 0 || v > 100 {
			return fmt.Errorf("region %q: size %v out of range 0-100", r.ID, v)
		}
	}
	if r.MinSize > r.DefaultSize || r.DefaultSize > r.MaxSize {
		return fmt.Errorf("region %q: sizes must satisfy min <= default <= max (%v, %v, %v)",
			r.ID, r.MinSize, r.DefaultSize, r.MaxSize)
	}
	return nil
}
