package form

import "strings"

// Patch lays draft over snapshot for the named fields. A draft value that is
// blank (empty or whitespace) falls back to the snapshot's value, so an edit
// never clears a field by omission.
func Patch(draft, snapshot map[string]string, fields []string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, name := range fields {
		v := draft[name]
		if isBlank(v) {
			v = snapshot[name]
		}
		out[name] = v
	}
	return out
}

func isBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}
