package assistant

import "strings"

// ParseInput splits a raw line on whitespace into a lower-cased verb and its
// arguments. A blank line yields an empty verb.
func ParseInput(line string) (verb string, args []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}
