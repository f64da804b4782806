// Package decode turns raw model output into validated, typed records.
// The external service is asked for a bare JSON object but sometimes wraps
// it in code fences or surrounding prose; extraction tolerates both and
// fails closed on anything else.
package decode

import (
	"errors"
	"fmt"
)

var (
	// ErrNoObject means no complete JSON object was found in the text.
	ErrNoObject = errors.New("no JSON object found in response")
	// ErrAmbiguous means more than one top-level object was found.
	ErrAmbiguous = errors.New("multiple JSON objects found in response")
)

// ExtractObject locates the single top-level JSON object embedded in s.
// Zero or multiple candidates are an error; the decoder never guesses.
func ExtractObject(s string) (string, error) {
	candidates := findJSONCandidates(s)
	switch len(candidates) {
	case 0:
		return "", ErrNoObject
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("%w (%d candidates)", ErrAmbiguous, len(candidates))
	}
}

// findJSONCandidates scans the input string for top-level JSON object
// candidates, handling nested braces and string escaping to identify
// boundaries. A byte-level state machine is used instead of regex; it is
// safe to iterate bytes for ASCII delimiters because UTF-8 guarantees
// ASCII bytes never appear inside a multi-byte sequence.
func findJSONCandidates(s string) []string {
	var candidates []string
	var depth int
	start := -1
	var inString bool
	var escape bool

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}

		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		if b == '"' {
			inString = true
			continue
		}

		if b == '{' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if b == '}' {
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					candidates = append(candidates, s[start:i+1])
					start = -1
				}
			}
		}
	}

	return candidates
}
