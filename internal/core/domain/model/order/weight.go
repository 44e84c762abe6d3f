package order

import (
	"strconv"
	"strings"
)

// ParseWeightSpec expands a berat specification into individual weight tokens.
//
// The input is split on commas and every part is trimmed; empty parts are
// dropped. A part of the form "start-end" with integer bounds expands to
// start, start+1, ..., end. When end < start the part yields no tokens and no
// error. Any other part, including decimals such as "2.5", is kept verbatim.
//
// Examples:
//
//	ParseWeightSpec("2,4,7-9") // ["2" "4" "7" "8" "9"]
//	ParseWeightSpec("5-5")     // ["5"]
//	ParseWeightSpec("9-7")     // []
func ParseWeightSpec(input string) []string {
	tokens := make([]string, 0)
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		start, end, ok := parseRange(part)
		if !ok {
			tokens = append(tokens, part)
			continue
		}

		for w := start; w <= end; w++ {
			tokens = append(tokens, strconv.Itoa(w))
		}
	}
	return tokens
}

// parseRange splits "a-b" into integer bounds. A leading dash is not a range
// separator, so "-3" is not treated as one.
func parseRange(part string) (int, int, bool) {
	idx := strings.Index(part, "-")
	if idx <= 0 {
		return 0, 0, false
	}

	start, err := strconv.Atoi(strings.TrimSpace(part[:idx]))
	if err != nil {
		return 0, 0, false
	}
	end, err := strconv.Atoi(strings.TrimSpace(part[idx+1:]))
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}
