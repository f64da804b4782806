package decode

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"impactsim/internal/logging"
)

// Decode extracts the single JSON object from raw model text, validates
// it against the declared output schema, and unmarshals it into v. The
// schema sent to the service is advisory only, so the same declaration is
// enforced locally here; a response that violates it is a decode error,
// never a silently defaulted record. A nil schema skips validation.
func Decode(raw string, schema map[string]interface{}, v interface{}) error {
	text, err := ExtractObject(raw)
	if err != nil {
		logging.DecodeError("extraction failed: %v (raw_len=%d)", err, len(raw))
		return err
	}

	if !json.Valid([]byte(text)) {
		logging.DecodeError("extracted candidate is not valid JSON (len=%d)", len(text))
		return fmt.Errorf("response is not valid JSON")
	}

	if schema != nil {
		if err := validate(text, schema); err != nil {
			logging.DecodeError("schema validation failed: %v", err)
			return err
		}
	}

	if err := json.Unmarshal([]byte(text), v); err != nil {
		logging.DecodeError("unmarshal failed: %v", err)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	logging.DecodeDebug("decoded object len=%d", len(text))
	return nil
}

// validate checks the extracted document against the declared schema.
func validate(document string, schema map[string]interface{}) error {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("invalid declared schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("response violates declared schema: %s", strings.Join(msgs, "; "))
	}
	return nil
}
