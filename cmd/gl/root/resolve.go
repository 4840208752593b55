package root

import (
	"fmt"
	"strconv"
	"strings"
)

// resolveID matches a user argument against ids in display order: an exact
// id, a 1-based list position, or a unique id prefix.
func resolveID(kind string, ids []string, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}
	for _, id := range ids {
		if id == arg {
			return id, nil
		}
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(ids) {
		return ids[n-1], nil
	}
	var match string
	for _, id := range ids {
		if !strings.HasPrefix(id, arg) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%s %q is ambiguous", kind, arg)
		}
		match = id
	}
	if match == "" {
		return "", fmt.Errorf("%s %q not found", kind, arg)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
