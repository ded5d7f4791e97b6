// Package photoset computes the photo order written when a listing draft is
// saved. A Set is built fresh from the persisted photo list each time a form
// opens and is discarded on submit; nothing here is durable.
package photoset

// Set tracks which photos of a source list are hidden and which one is
// primary during a single edit session.
type Set struct {
	source  []string
	hidden  map[int]bool
	primary int
}

// New builds a Set over the given photo URL list with nothing hidden and the
// first photo primary.
func New(source []string) *Set {
	return &Set{
		source: append([]string(nil), source...),
		hidden: make(map[int]bool),
	}
}

// Source returns the photo list the Set was built from.
func (s *Set) Source() []string {
	return append([]string(nil), s.source...)
}

// ToggleHidden flips the hidden state of the photo at index i.
func (s *Set) ToggleHidden(i int) {
	if s.hidden[i] {
		delete(s.hidden, i)
		return
	}
	s.hidden[i] = true
}

// IsHidden reports whether the photo at index i is hidden.
func (s *Set) IsHidden(i int) bool {
	return s.hidden[i]
}

// SetPrimary marks the photo at index i as primary. A hidden index is
// accepted; the conflict resolves at save time, where a hidden primary is
// simply absent from the output.
func (s *Set) SetPrimary(i int) {
	s.primary = i
}

// Primary returns the current primary index.
func (s *Set) Primary() int {
	return s.primary
}

// SaveOrder returns the list to persist for the current hidden set and
// primary selection.
func (s *Set) SaveOrder() []string {
	return SaveOrder(s.source, s.hidden, s.primary)
}

// SaveOrder filters source down to the visible photos, then moves the primary
// photo to the front if it survived the filter. If the primary is hidden or
// out of range the filtered order is returned unchanged. The function is pure:
// identical inputs always yield the identical list.
func SaveOrder(source []string, hidden map[int]bool, primary int) []string {
	visible := make([]string, 0, len(source))
	primaryPos := -1
	for i, url := range source {
		if hidden[i] {
			continue
		}
		if i == primary {
			primaryPos = len(visible)
		}
		visible = append(visible, url)
	}
	if primaryPos <= 0 {
		return visible
	}
	ordered := make([]string, 0, len(visible))
	ordered = append(ordered, visible[primaryPos])
	ordered = append(ordered, visible[:primaryPos]...)
	ordered = append(ordered, visible[primaryPos+1:]...)
	return ordered
}
