package events

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/bnema/sashes/internal/domain/entity"
)

// SchemaID identifies the PaneEvent wire contract.
const SchemaID = "https://github.com/bnema/sashes/pane-event.schema.json"

// Schema reflects the PaneEvent wire contract into a JSON schema document.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&entity.PaneEvent{})

	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "Pane lifecycle event"
	schema.Description = fmt.Sprintf("PaneEvent wire contract, version %s", entity.PayloadSchemaVersion)
	schema.Version = jsonschema.Version
	return schema
}

// SchemaJSON returns the indented schema document.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event schema: %w", err)
	}
	return data, nil
}
