package cleanup

import "github.com/santhosh-tekuri/jsonschema/v5"

// outputSchema validates the model's JSON output before it is trusted. An id
// may be a bare number or a string like "4(a)".
const outputSchema = `{
  "type": "object",
  "properties": {
    "requests": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": ["string", "integer", "number"]},
          "text": {"type": "string"}
        },
        "required": ["id", "text"]
      }
    },
    "cleaned_full_text": {"type": "string"}
  },
  "required": ["requests"]
}`

// OutputSchema is the compiled schema for cleanup output validation.
var OutputSchema = jsonschema.MustCompileString("cleanup-output.json", outputSchema)
