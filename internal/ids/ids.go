package ids

import "github.com/segmentio/ksuid"

// New returns a sortable, globally unique identifier.
func New() string {
	return ksuid.New().String()
}

// NewWithPrefix returns New() prefixed with "<prefix>_", e.g. "user_2Nf...".
func NewWithPrefix(prefix string) string {
	return prefix + "_" + New()
}
