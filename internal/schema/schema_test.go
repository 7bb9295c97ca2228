package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
entities:
  - id: e1
    name: Customer
    properties:
      - name: email
        type: text
      - name: orders
        type: relation
        relatedEntityId: e2
  - id: e2
    name: Order
    properties:
      - name: customer_id
        type: text
folders:
  - id: f1
    name: Sales
    color: "#7f57b4"
    entityIds: [e1, e2]
`

const sampleJSON = `{
  "entities": [
    {"id": "e1", "name": "Customer", "properties": [
      {"name": "email", "type": "text"},
      {"name": "orders", "type": "relation", "relatedEntityId": "e2"}
    ]},
    {"id": "e2", "name": "Order", "properties": [
      {"name": "customer_id", "type": "text"}
    ]}
  ],
  "folders": [
    {"id": "f1", "name": "Sales", "color": "#7f57b4", "entityIds": ["e1", "e2"]}
  ]
}`

func TestDecodeYAMLAndJSONAgree(t *testing.T) {
	fromYAML, err := Decode([]byte(sampleYAML), ".yaml")
	require.NoError(t, err)
	fromJSON, err := Decode([]byte(sampleJSON), ".json")
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromJSON)
	require.Len(t, fromYAML.Entities, 2)
	assert.Equal(t, "Customer", fromYAML.Entities[0].Name)
	assert.Equal(t, "e2", fromYAML.Entities[0].Properties[1].RelatedEntityID)
	require.Len(t, fromYAML.Folders, 1)
	assert.Equal(t, []string{"e1", "e2"}, fromYAML.Folders[0].EntityIDs)
}

func TestLoadReadsFileByExtension(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "ws.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0644))
	jsonPath := filepath.Join(dir, "ws.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0644))

	fromYAML, warns, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Empty(t, warns)
	fromJSON, _, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, fromYAML, fromJSON)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read workspace")
}

func TestValidateRejectsEmptyWorkspace(t *testing.T) {
	ws := &Workspace{}
	_, err := ws.Validate()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestValidateRejectsDuplicateEntityIDs(t *testing.T) {
	ws := &Workspace{Entities: []Entity{
		{ID: "e1", Name: "A"},
		{ID: "e1", Name: "B"},
	}}
	_, err := ws.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate entity id e1")
}

func TestValidateRejectsMissingIDOrName(t *testing.T) {
	_, err := (&Workspace{Entities: []Entity{{Name: "A"}}}).Validate()
	assert.Error(t, err)

	_, err = (&Workspace{Entities: []Entity{{ID: "e1"}}}).Validate()
	assert.Error(t, err)
}

func TestValidateWarnsOnUnknownRelationTarget(t *testing.T) {
	ws := &Workspace{Entities: []Entity{
		{ID: "e1", Name: "A", Properties: []Property{
			{Name: "other", Type: TypeRelation, RelatedEntityID: "ghost"},
		}},
	}}
	warns, err := ws.Validate()
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "ghost")
}

func TestValidateWarnsOnUnknownFolderMember(t *testing.T) {
	ws := &Workspace{
		Entities: []Entity{{ID: "e1", Name: "A"}},
		Folders:  []Folder{{ID: "f1", Name: "F", EntityIDs: []string{"e1", "ghost"}}},
	}
	warns, err := ws.Validate()
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "folder f1")
}

func TestValidateRejectsDuplicateFolderIDs(t *testing.T) {
	ws := &Workspace{
		Entities: []Entity{{ID: "e1", Name: "A"}},
		Folders: []Folder{
			{ID: "f1", Name: "F"},
			{ID: "f1", Name: "G"},
		},
	}
	_, err := ws.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate folder id f1")
}

func TestEntityAndFolderLookups(t *testing.T) {
	ws, err := Decode([]byte(sampleYAML), ".yaml")
	require.NoError(t, err)

	e := ws.Entity("e2")
	require.NotNil(t, e)
	assert.Equal(t, "Order", e.Name)
	assert.Nil(t, ws.Entity("ghost"))

	f := ws.FolderOf("e1")
	require.NotNil(t, f)
	assert.Equal(t, "Sales", f.Name)
	assert.Nil(t, ws.FolderOf("ghost"))
}

func TestDecodeInvalidInput(t *testing.T) {
	_, err := Decode([]byte("{not json"), ".json")
	assert.Error(t, err)

	_, err = Decode([]byte("entities: [odd: {"), ".yaml")
	assert.Error(t, err)
}
