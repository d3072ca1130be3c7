package asset

// Vector3 is a position or scale.
type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Vector2 is a 2D anchor, pivot or size.
type Vector2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Quaternion is a rotation.
type Quaternion struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
	W float64 `json:"w" yaml:"w"`
}

// RectTransform carries the layout of UI nodes.
type RectTransform struct {
	AnchoredPosition Vector2 `json:"anchored_position" yaml:"anchored_position"`
	AnchorMin        Vector2 `json:"anchor_min" yaml:"anchor_min"`
	AnchorMax        Vector2 `json:"anchor_max" yaml:"anchor_max"`
	SizeDelta        Vector2 `json:"size_delta" yaml:"size_delta"`
	Pivot            Vector2 `json:"pivot" yaml:"pivot"`
}

// Transform is the local placement of a node under its parent.
type Transform struct {
	Position Vector3        `json:"position" yaml:"position"`
	Rotation Quaternion     `json:"rotation" yaml:"rotation"`
	Scale    Vector3        `json:"scale" yaml:"scale"`
	Rect     *RectTransform `json:"rect,omitempty" yaml:"rect,omitempty"`
}

// IdentityTransform is the transform of a freshly created node.
func IdentityTransform() Transform {
	return Transform{
		Rotation: Quaternion{W: 1},
		Scale:    Vector3{X: 1, Y: 1, Z: 1},
	}
}

// Reference points at another asset.
type Reference struct {
	Path string `json:"path" yaml:"path"`
}

// Property is a serialized field. A property with a non-nil Ref is a
// reference slot; Children hold nested structures and array elements.
type Property struct {
	Name     string      `json:"name" yaml:"name"`
	Ref      *Reference  `json:"ref,omitempty" yaml:"ref,omitempty"`
	Value    any         `json:"value,omitempty" yaml:"value,omitempty"`
	Children []*Property `json:"children,omitempty" yaml:"children,omitempty"`
}

// Component is a typed bag of properties attached to a node.
type Component struct {
	Type       string      `json:"type" yaml:"type"`
	Properties []*Property `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Node is an element of a document hierarchy.
type Node struct {
	Name string `json:"name" yaml:"name"`
	// Source is the composite this node is an instance of, if any.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	// Transform is the local placement under the parent node.
	Transform Transform `json:"transform" yaml:"transform"`
	// Components may contain nil entries for missing or destroyed components.
	Components []*Component `json:"components,omitempty" yaml:"components,omitempty"`
	// Overrides are the property modifications an instance applies on top of its source.
	Overrides []*Property `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	// Children are the child nodes in sibling order.
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsInstance reports whether n is the root of a composite instance.
func (n *Node) IsInstance() bool {
	return n != nil && n.Source != ""
}

// Document is the editable contents of a composite, data asset or scene.
type Document struct {
	Path string `json:"-" yaml:"-"`
	Kind Kind   `json:"kind" yaml:"kind"`
	Root *Node  `json:"root" yaml:"root"`
}
