package invoice

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const recordSchemaJSON = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["invoice_number", "date", "total_amount"],
  "properties": {
    "invoice_number": {"type": "string", "minLength": 1, "pattern": "^[0-9]+$"},
    "date":           {"type": "string", "minLength": 1, "pattern": "^[0-9-]+$"},
    "total_amount":   {"type": "string", "minLength": 1, "pattern": "^[0-9,.]+$"}
  }
}`

var recordSchema = jsonschema.MustCompileString("invoice_record.json", recordSchemaJSON)

// ValidateJSON validates a serialized record against the record schema.
func ValidateJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := recordSchema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
