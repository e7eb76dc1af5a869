package blocks

import (
	"fmt"
	"sort"
	"sync"

	perrors "github.com/conneroisu/panelkit/internal/errors"
	"github.com/conneroisu/panelkit/internal/layout"
)

// Registry manages the blocks the server can preview
type Registry struct {
	blocks map[string]*Block
	mutex  sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		blocks: make(map[string]*Block),
	}
}

// Register validates a block and adds or replaces it. A block whose controls
// or defaults name a panel its group does not declare is rejected.
func (r *Registry) Register(block *Block) error {
	if err := validateBlock(block); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.blocks[block.Name] = block
	return nil
}

// MustRegister is Register that panics on an invalid block.
func (r *Registry) MustRegister(block *Block) {
	if err := r.Register(block); err != nil {
		panic(err)
	}
}

// Get retrieves a block by name
func (r *Registry) Get(name string) (*Block, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	block, exists := r.blocks[name]
	if !exists {
		return nil, perrors.ErrBlockNotFound(name)
	}
	return block, nil
}

// All returns every block ordered by name
func (r *Registry) All() []*Block {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*Block, 0, len(r.blocks))
	for _, block := range r.blocks {
		result = append(result, block)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Count returns the number of registered blocks
func (r *Registry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.blocks)
}

// PanelDefaults merges the default panel state of every block. Panel ids are
// shared across the cookie, so an API call for any panel starts from the
// state its block would have rendered.
func (r *Registry) PanelDefaults() map[string]bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	defaults := make(map[string]bool)
	for _, block := range r.blocks {
		for id, open := range block.Defaults {
			defaults[id] = open
		}
	}
	return defaults
}

// Group returns the layout group persisted under key.
func (r *Registry) Group(key string) (*layout.Group, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, block := range r.blocks {
		if block.Group.Key == key {
			return block.Group, true
		}
	}
	return nil, false
}

func validateBlock(block *Block) error {
	if block == nil || block.Name == "" {
		return perrors.NewValidationError(perrors.ErrCodeBlockInvalid, "block must have a name")
	}
	if block.Group == nil {
		return invalid(block, "has no layout group")
	}

	panels := make(map[string]bool)
	regions := make(map[string]bool)
	for i, region := range block.Group.Regions {
		if err := region.Validate(); err != nil {
			return invalid(block, fmt.Sprintf("region %d: %v", i, err))
		}
		if region.ID != "" {
			regions[region.ID] = true
		}
		if region.Kind == layout.KindPanel {
			panels[region.ID] = true
		}
	}

	if initial := block.Group.Initial(); len(initial) != len(block.Group.SizedIDs()) {
		return invalid(block, fmt.Sprintf("initial layout has %d sizes for %d regions",
			len(initial), len(block.Group.SizedIDs())))
	}

	for id := range block.Defaults {
		if !panels[id] {
			return invalid(block, fmt.Sprintf("default state for undeclared panel %q", id))
		}
	}
	for _, c := range block.Controls {
		if _, err := layout.ParseActionKind(string(c.Kind)); err != nil {
			return invalid(block, err.Error())
		}
		if !panels[c.Panel] {
			return invalid(block, fmt.Sprintf("%s control targets undeclared panel %q", c.Kind, c.Panel))
		}
		if c.Slot != SlotSidebar && !regions[c.Slot] {
			return invalid(block, fmt.Sprintf("control slot %q is not a region", c.Slot))
		}
	}
	return nil
}

func invalid(block *Block, reason string) error {
	return perrors.NewValidationError(perrors.ErrCodeBlockInvalid,
		fmt.Sprintf("block %q %s", block.Name, reason)).WithContext("block", block.Name)
}
