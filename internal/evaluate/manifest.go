package evaluate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// manifestSchema validates the labeled-corpus manifest before a run, so a
// malformed corpus fails loudly up front instead of silently skewing the
// accuracy numbers.
const manifestSchema = `{
	"type": "object",
	"required": ["documents"],
	"properties": {
		"documents": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["file_path", "true_document_type"],
				"properties": {
					"file_path": {"type": "string", "minLength": 1},
					"true_document_type": {"type": "string", "minLength": 1}
				}
			}
		}
	}
}`

type manifest struct {
	Documents []LabeledDocument `json:"documents"`
}

var compiledManifestSchema = jsonschema.MustCompileString("manifest.json", manifestSchema)

// LoadManifest reads and validates a labeled-corpus manifest file.
func LoadManifest(path string) ([]LabeledDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := compiledManifestSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}

	var m manifest
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return m.Documents, nil
}
