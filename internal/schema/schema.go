package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TypeRelation marks a property as an explicit link to another entity.
const TypeRelation = "relation"

// ErrEmpty is returned when a workspace file contains no entities.
var ErrEmpty = errors.New("workspace has no entities")

// Workspace is one decoded entity/folder snapshot. The graph view is rebuilt
// wholesale from a Workspace; it is never patched in place.
type Workspace struct {
	Entities []Entity `json:"entities" yaml:"entities"`
	Folders  []Folder `json:"folders,omitempty" yaml:"folders,omitempty"`
}

// Entity is a domain entity with typed properties.
type Entity struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Properties []Property `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Property is one attribute of an entity. Type is free-form ("text",
// "number", ...); the value "relation" plus a RelatedEntityID declares an
// explicit link to another entity.
type Property struct {
	Name            string `json:"name" yaml:"name"`
	Type            string `json:"type" yaml:"type"`
	RelatedEntityID string `json:"relatedEntityId,omitempty" yaml:"relatedEntityId,omitempty"`
}

// Folder groups entities; it contributes breadcrumb roots and node colors.
type Folder struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Color     string   `json:"color,omitempty" yaml:"color,omitempty"`
	EntityIDs []string `json:"entityIds,omitempty" yaml:"entityIds,omitempty"`
}

// Load reads, decodes, and validates a workspace file. The format is chosen
// by extension: .json uses encoding/json, everything else YAML. Returned
// warnings are non-fatal; the graph builder skips the references they name.
func Load(path string) (*Workspace, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read workspace: %w", err)
	}
	ws, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, nil, err
	}
	warns, err := ws.Validate()
	if err != nil {
		return nil, nil, err
	}
	return ws, warns, nil
}

// Decode parses raw workspace bytes; ext selects the format as in Load.
func Decode(data []byte, ext string) (*Workspace, error) {
	var ws Workspace
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &ws); err != nil {
			return nil, fmt.Errorf("parse workspace json: %w", err)
		}
		return &ws, nil
	}
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("parse workspace yaml: %w", err)
	}
	return &ws, nil
}

// Validate checks structural rules. Duplicate or empty ids are errors.
// Dangling references (relation targets, folder members) are warnings only,
// because the engine renders a graph without them.
func (w *Workspace) Validate() ([]string, error) {
	if len(w.Entities) == 0 {
		return nil, ErrEmpty
	}

	entities := make(map[string]struct{}, len(w.Entities))
	for _, e := range w.Entities {
		if e.ID == "" {
			return nil, fmt.Errorf("entity %q has no id", e.Name)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("entity %s has no name", e.ID)
		}
		if _, dup := entities[e.ID]; dup {
			return nil, fmt.Errorf("duplicate entity id %s", e.ID)
		}
		entities[e.ID] = struct{}{}
	}

	var warns []string
	folders := make(map[string]struct{}, len(w.Folders))
	for _, f := range w.Folders {
		if f.ID == "" {
			return nil, fmt.Errorf("folder %q has no id", f.Name)
		}
		if _, dup := folders[f.ID]; dup {
			return nil, fmt.Errorf("duplicate folder id %s", f.ID)
		}
		folders[f.ID] = struct{}{}
		for _, id := range f.EntityIDs {
			if _, ok := entities[id]; !ok {
				warns = append(warns, fmt.Sprintf("folder %s references unknown entity %s", f.ID, id))
			}
		}
	}

	for _, e := range w.Entities {
		for _, p := range e.Properties {
			if p.Type == TypeRelation && p.RelatedEntityID != "" {
				if _, ok := entities[p.RelatedEntityID]; !ok {
					warns = append(warns, fmt.Sprintf("entity %s property %s relates to unknown entity %s", e.ID, p.Name, p.RelatedEntityID))
				}
			}
		}
	}
	return warns, nil
}

// Entity returns the entity with the given id, or nil.
func (w *Workspace) Entity(id string) *Entity {
	for i := range w.Entities {
		if w.Entities[i].ID == id {
			return &w.Entities[i]
		}
	}
	return nil
}

// FolderOf returns the first folder whose EntityIDs contain the entity, or nil.
func (w *Workspace) FolderOf(entityID string) *Folder {
	for i := range w.Folders {
		for _, id := range w.Folders[i].EntityIDs {
			if id == entityID {
				return &w.Folders[i]
			}
		}
	}
	return nil
}
