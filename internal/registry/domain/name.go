package domain

// ValidName reports whether name is acceptable as a resource name.
// A valid name is non-empty and contains only ASCII alphanumerics,
// '-' and '_'. Anything else is rejected before it reaches storage.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
