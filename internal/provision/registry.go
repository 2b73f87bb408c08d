package provision

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrToolExists         = errors.New("tool already registered")
	ErrToolNil            = errors.New("tool is nil")
	ErrInvalidMetadata    = errors.New("invalid tool metadata")
	ErrUnknownRequirement = errors.New("requirement not registered")
)

// Registry stores tools by stable identifier and preserves registration
// order as the provisioning plan. A tool may only require ids registered
// before it, so ordering dependencies are declared rather than implied.
type Registry struct {
	order []string
	items map[string]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Tool)}
}

// ValidateMetadata checks required metadata fields and id format.
func ValidateMetadata(meta ToolMetadata) error {
	id := strings.TrimSpace(meta.ID)
	name := strings.TrimSpace(meta.Name)
	desc := strings.TrimSpace(meta.Description)
	command := strings.TrimSpace(meta.Command)
	if id == "" || name == "" || desc == "" || command == "" {
		return fmt.Errorf("%w: id, name, description, and command are required", ErrInvalidMetadata)
	}
	if !isValidID(id) {
		return fmt.Errorf("%w: invalid id format %q", ErrInvalidMetadata, id)
	}
	return nil
}

// Register appends a tool to the plan.
func (r *Registry) Register(tool Tool) error {
	if tool == nil {
		return ErrToolNil
	}

	meta := tool.Metadata()
	if err := ValidateMetadata(meta); err != nil {
		return err
	}

	if _, ok := r.items[meta.ID]; ok {
		return ErrToolExists
	}
	for _, req := range meta.Requires {
		if _, ok := r.items[req]; !ok {
			return fmt.Errorf("%w: %q requires %q", ErrUnknownRequirement, meta.ID, req)
		}
	}
	r.items[meta.ID] = tool
	r.order = append(r.order, meta.ID)
	return nil
}

// Resolve returns a tool by id.
func (r *Registry) Resolve(id string) (Tool, bool) {
	tool, ok := r.items[id]
	return tool, ok
}

// Plan returns tools in registration order.
func (r *Registry) Plan() []Tool {
	plan := make([]Tool, 0, len(r.order))
	for _, id := range r.order {
		plan = append(plan, r.items[id])
	}
	return plan
}

// ListMetadata returns deterministic metadata ordering by id.
func (r *Registry) ListMetadata() []ToolMetadata {
	list := make([]ToolMetadata, 0, len(r.items))
	for _, tool := range r.items {
		list = append(list, tool.Metadata())
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}

func isValidID(id string) bool {
	if id == "" {
		return false
	}
	lastSep := false
	for i := 0; i < len(id); i++ {
		c := id[i]
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		isSep := c == '.' || c == '-' || c == '_'
		if !(isLower || isDigit || isSep) {
			return false
		}
		if i == 0 || i == len(id)-1 {
			if isSep {
				return false
			}
		}
		if isSep && lastSep {
			return false
		}
		lastSep = isSep
	}
	return true
}
