package textproc

import "strings"

// RemoveDuplicateLines drops every repeated line (exact match after
// trimming), keeping the first occurrence and the relative order of the
// survivors. Model output tends to repeat itself when the same chunk is
// retrieved more than once.
func RemoveDuplicateLines(text string) string {
	lines := strings.Split(text, "\n")
	seen := make(map[string]struct{}, len(lines))
	unique := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		unique = append(unique, trimmed)
	}
	return strings.Join(unique, "\n")
}
