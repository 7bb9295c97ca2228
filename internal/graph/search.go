package graph

import "strings"

// Filter computes the visible-node-id set for a query. Labels match by
// case-insensitive substring. A matched property reveals its owner entity;
// a matched entity reveals all of its properties. The empty query returns
// the full id set.
func Filter(nodes []Node, query string) map[string]bool {
	visible := make(map[string]bool, len(nodes))
	if query == "" {
		for i := range nodes {
			visible[nodes[i].ID] = true
		}
		return visible
	}

	q := strings.ToLower(query)
	matchedEntities := make(map[string]bool)
	for i := range nodes {
		n := &nodes[i]
		if !strings.Contains(strings.ToLower(n.Label), q) {
			continue
		}
		visible[n.ID] = true
		switch n.Kind {
		case KindEntity:
			matchedEntities[n.ID] = true
		case KindProperty:
			visible[n.OwnerID] = true
		}
	}
	for i := range nodes {
		n := &nodes[i]
		if n.Kind == KindProperty && matchedEntities[n.OwnerID] {
			visible[n.ID] = true
		}
	}
	return visible
}

// EdgeVisible reports whether both endpoints passed the filter. Edges that
// fail render dimmed, not hidden.
func EdgeVisible(e Edge, visible map[string]bool) bool {
	return visible[e.Source] && visible[e.Target]
}
