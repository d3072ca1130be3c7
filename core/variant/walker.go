package variant

import (
	"context"

	"asset-variants/core/asset"
)

// Visitor returns the substitute for the asset referenced at ref.
// An empty result or ref itself leaves the slot untouched.
type Visitor func(ctx context.Context, ref string) (string, error)

// Walk visits every reference slot in the hierarchy below root: component
// properties, instance overrides and their nested properties, in document
// order. Changed references are written back. Nil nodes and components are
// skipped. It reports whether any slot was modified.
func Walk(ctx context.Context, root *asset.Node, visit Visitor) (bool, error) {
	if root == nil {
		return false, nil
	}

	changed := false
	nodes := []*asset.Node{root}
	for len(nodes) > 0 {
		n := nodes[len(nodes)-1]
		nodes = nodes[:len(nodes)-1]
		if n == nil {
			continue
		}

		for _, c := range n.Components {
			if c == nil {
				continue
			}
			modified, err := WalkProperties(ctx, c.Properties, visit)
			changed = changed || modified
			if err != nil {
				return changed, err
			}
		}

		modified, err := WalkProperties(ctx, n.Overrides, visit)
		changed = changed || modified
		if err != nil {
			return changed, err
		}

		for i := len(n.Children) - 1; i >= 0; i-- {
			nodes = append(nodes, n.Children[i])
		}
	}
	return changed, nil
}

// WalkProperties visits every reference slot in props and their children.
func WalkProperties(ctx context.Context, props []*asset.Property, visit Visitor) (bool, error) {
	changed := false
	stack := make([]*asset.Property, 0, len(props))
	for i := len(props) - 1; i >= 0; i-- {
		stack = append(stack, props[i])
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p == nil {
			continue
		}

		if p.Ref != nil && p.Ref.Path != "" {
			out, err := visit(ctx, p.Ref.Path)
			if err != nil {
				return changed, err
			}
			if out != "" && out != p.Ref.Path {
				p.Ref.Path = out
				changed = true
			}
		}

		for i := len(p.Children) - 1; i >= 0; i-- {
			stack = append(stack, p.Children[i])
		}
	}
	return changed, nil
}

// instanceSources returns the distinct composites instanced below root, in
// document order. The root itself is not considered.
func instanceSources(root *asset.Node) []string {
	if root == nil {
		return nil
	}

	var sources []string
	seen := make(map[string]struct{})
	nodes := make([]*asset.Node, 0, len(root.Children))
	for i := len(root.Children) - 1; i >= 0; i-- {
		nodes = append(nodes, root.Children[i])
	}

	for len(nodes) > 0 {
		n := nodes[len(nodes)-1]
		nodes = nodes[:len(nodes)-1]
		if n == nil {
			continue
		}
		if n.IsInstance() {
			if _, ok := seen[n.Source]; !ok {
				seen[n.Source] = struct{}{}
				sources = append(sources, n.Source)
			}
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			nodes = append(nodes, n.Children[i])
		}
	}
	return sources
}

// instanceNodes returns every instance node below root in document order.
func instanceNodes(root *asset.Node) []*asset.Node {
	if root == nil {
		return nil
	}

	var out []*asset.Node
	nodes := make([]*asset.Node, 0, len(root.Children))
	for i := len(root.Children) - 1; i >= 0; i-- {
		nodes = append(nodes, root.Children[i])
	}

	for len(nodes) > 0 {
		n := nodes[len(nodes)-1]
		nodes = nodes[:len(nodes)-1]
		if n == nil {
			continue
		}
		if n.IsInstance() {
			out = append(out, n)
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			nodes = append(nodes, n.Children[i])
		}
	}
	return out
}

// replaceInstance turns n into the fresh instance while keeping its name,
// placement, overrides and added children. Sibling order is unaffected since
// the node is replaced in place.
func replaceInstance(n *asset.Node, fresh *asset.Node) {
	n.Source = fresh.Source
	n.Components = fresh.Components
}
