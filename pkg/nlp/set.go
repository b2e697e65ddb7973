package nlp

// NormalizedSet is a set of labels compared by NormalizeLabel.
// It remembers the first spelling added for each normalized key, in insertion order.
// The zero value is ready to use.
type NormalizedSet struct {
	index map[string]struct{}
	items []string
}

// NewNormalizedSet builds a set from values, keeping the first spelling of duplicates.
func NewNormalizedSet(values ...string) *NormalizedSet {
	s := &NormalizedSet{index: make(map[string]struct{}, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Contains reports whether a label equal to v under normalization is present.
func (s *NormalizedSet) Contains(v string) bool {
	if s == nil || s.index == nil {
		return false
	}
	_, ok := s.index[NormalizeLabel(v)]
	return ok
}

// Add inserts v and reports whether it was not already present.
func (s *NormalizedSet) Add(v string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	key := NormalizeLabel(v)
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *NormalizedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// ToSequence returns a copy of the stored spellings in insertion order.
func (s *NormalizedSet) ToSequence() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Dedupe returns values without normalized duplicates, first spelling wins.
func Dedupe(values []string) []string {
	return NewNormalizedSet(values...).ToSequence()
}
