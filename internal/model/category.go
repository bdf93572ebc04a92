package model

// CategorySet is the ordered list of budget category names valid for the
// current configuration. Categories are never added or removed individually;
// the set is only redefined as a whole when configuration is reloaded.
type CategorySet []string

// Contains reports whether name is a valid category.
func (cs CategorySet) Contains(name string) bool {
	for _, c := range cs {
		if c == name {
			return true
		}
	}
	return false
}

// Names returns a copy of the category names in configured order.
func (cs CategorySet) Names() []string {
	out := make([]string, len(cs))
	copy(out, cs)
	return out
}
