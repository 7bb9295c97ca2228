package graph

// Breadcrumb derives the selection path for a node: [folder, entity] for an
// entity node, [folder, entity, property] for a property node. The folder
// element appears only when the entity belongs to one.
func Breadcrumb(g *Graph, nodeID string) []string {
	n := g.Node(nodeID)
	if n == nil {
		return nil
	}

	entity := n
	if n.Kind == KindProperty {
		entity = g.Node(n.OwnerID)
		if entity == nil {
			return []string{n.Label}
		}
	}

	var parts []string
	if f, ok := g.Folder(entity.FolderID); ok {
		parts = append(parts, f.Name)
	}
	parts = append(parts, entity.Label)
	if n.Kind == KindProperty {
		parts = append(parts, n.Label)
	}
	return parts
}
