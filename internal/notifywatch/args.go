package notifywatch

import (
	"encoding/base64"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// DecodeArgs decodes a base64-encoded function-call argument payload into a
// loosely-typed map.
//
// Contract-call arguments are third-party input: they may be invalid base64,
// invalid JSON, or JSON written in the relaxed dialect browsers and contract
// SDKs tend to emit (trailing commas, comments, unquoted keys). Arguments are
// therefore parsed as JSON5, and any failure yields an empty map rather than
// an error. Malformed arguments are expected traffic, not a system fault.
func DecodeArgs(encoded string) map[string]any {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return map[string]any{}
	}

	var args map[string]any
	if err := json5.Unmarshal(raw, &args); err != nil || args == nil {
		return map[string]any{}
	}

	return args
}
