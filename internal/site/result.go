package site

// Named data slots consumed by the presentation templates.
const (
	SlotBlogPosts = "blogPosts"
	SlotProjects  = "projects"
)

// ControllerResult carries named data slots to a template.
type ControllerResult struct {
	Data map[string]any
}

func NewControllerResult(data map[string]any) ControllerResult {
	if data == nil {
		data = map[string]any{}
	}
	return ControllerResult{Data: data}
}

// Get returns the value stored in a slot.
func (r ControllerResult) Get(slot string) (any, bool) {
	v, ok := r.Data[slot]
	return v, ok
}
