package extraction

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	solidArray    = regexp.MustCompile(`\[\s*"[^"]*"(?:\s*,\s*"[^"]*")*\s*\]`)
	gradientArray = regexp.MustCompile(`\[\s*\{\s*"start"\s*:\s*"[^"]+"\s*,\s*"end"\s*:\s*"[^"]+"\s*\}(?:\s*,\s*\{\s*"start"\s*:\s*"[^"]+"\s*,\s*"end"\s*:\s*"[^"]+"\s*\})*\s*\]`)
)

// ParseSolid recovers a list of colors from a model answer: the whole answer
// as JSON first, then the first embedded JSON string array.
func ParseSolid(content string) ([]string, error) {
	var colors []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &colors); err == nil {
		return colors, nil
	}

	match := solidArray.FindString(content)
	if match == "" {
		return nil, &ParseError{Raw: content}
	}
	if err := json.Unmarshal([]byte(match), &colors); err != nil {
		return nil, &ParseError{Raw: content}
	}
	return colors, nil
}

// ParseGradient recovers {start,end} pairs the same way ParseSolid does.
func ParseGradient(content string) ([]GradientPair, error) {
	var pairs []GradientPair
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &pairs); err == nil {
		return pairs, nil
	}

	match := gradientArray.FindString(content)
	if match == "" {
		return nil, &ParseError{Raw: content}
	}
	if err := json.Unmarshal([]byte(match), &pairs); err != nil {
		return nil, &ParseError{Raw: content}
	}
	return pairs, nil
}
