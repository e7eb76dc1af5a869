package layout

import "maps"

// GroupSizes is the committed size vector of one layout group. IDs holds the
// ids of the sized children in the order the sizes were recorded, so a later
// render with reordered or missing children can match sizes by id.
type GroupSizes struct {
	IDs   []string  `json:"ids,omitempty" yaml:"ids,omitempty"`
	Sizes []float64 `json:"sizes" yaml:"sizes"`
}

// Clone returns a deep copy.
func (g GroupSizes) Clone() GroupSizes {
	var out GroupSizes
	if g.IDs != nil {
		out.IDs = append([]string(nil), g.IDs...)
	}
	if g.Sizes != nil {
		out.Sizes = append([]float64(nil), g.Sizes...)
	}
	return out
}

// Keyed reports whether every size has a matching id.
func (g GroupSizes) Keyed() bool {
	return len(g.IDs) > 0 && len(g.IDs) == len(g.Sizes)
}

// SizeFor returns the recorded size for id.
func (g GroupSizes) SizeFor(id string) (float64, bool) {
	if !g.Keyed() {
		return 0, false
	}
	for i, candidate := range g.IDs {
		if candidate == id {
			return g.Sizes[i], true
		}
	}
	return 0, false
}

// Record is the durable layout state: panel open flags plus one size vector
// per layout group. It is what the layout cookie encodes.
type Record struct {
	Panels map[string]bool       `json:"panels" yaml:"panels"`
	Groups map[string]GroupSizes `json:"groups" yaml:"groups"`
}

// NewRecord returns an empty record with initialized maps.
func NewRecord() Record {
	return Record{
		Panels: make(map[string]bool),
		Groups: make(map[string]GroupSizes),
	}
}

// IsEmpty reports whether the record holds nothing.
func (r Record) IsEmpty() bool {
	return len(r.Panels) == 0 && len(r.Groups) == 0
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	out := NewRecord()
	maps.Copy(out.Panels, r.Panels)
	for key, sizes := range r.Groups {
		out.Groups[key] = sizes.Clone()
	}
	return out
}

// PanelStates overlays the persisted flags on defaults. Persisted entries for
// panels the caller did not name are kept, so persisting the resulting map
// does not drop state that belongs to other pages sharing the cookie.
func (r Record) PanelStates(defaults map[string]bool) map[string]bool {
	states := make(map[string]bool, len(defaults)+len(r.Panels))
	maps.Copy(states, defaults)
	maps.Copy(states, r.Panels)
	return states
}

// GroupLayout returns the persisted sizes for key, or fallback as a
// positional vector when nothing was persisted.
func (r Record) GroupLayout(key string, fallback []float64) GroupSizes {
	if sizes, ok := r.Groups[key]; ok && len(sizes.Sizes) > 0 {
		return sizes.Clone()
	}
	return GroupSizes{Sizes: append([]float64(nil), fallback...)}
}
