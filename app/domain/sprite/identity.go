package sprite

import "strings"

// ObjectKey derives the cache identity of an object from its creation
// prompt: lowercased, trimmed, internal whitespace collapsed to single
// spaces. Prompts that normalize identically are the same object.
func ObjectKey(prompt string) string {
	return strings.Join(strings.Fields(strings.ToLower(prompt)), " ")
}
