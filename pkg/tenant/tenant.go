package tenant

// ID is an opaque tenant identifier. Numeric identifiers are carried as their
// decimal string form; the value is never interpreted by this package.
type ID string

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty, meaning no tenant.
func (id ID) IsZero() bool {
	return id == ""
}
