package cvsync

import "github.com/elecmate/cvbuilder/pkg/nlp"

// ListDiff describes how an incoming list relates to an existing one.
// ToRemove is always empty: sync never strips entries from a CV.
type ListDiff struct {
	ToAdd     []string `json:"toAdd"`
	Unchanged []string `json:"unchanged"`
	ToRemove  []string `json:"toRemove"`
}

// Diff compares incoming against existing under label normalization.
// ToAdd keeps incoming order and repeats duplicates found within incoming;
// MergeListField is the operation that collapses them.
func Diff(existing, incoming []string) ListDiff {
	have := nlp.NewNormalizedSet(existing...)
	want := nlp.NewNormalizedSet(incoming...)

	d := ListDiff{ToAdd: []string{}, Unchanged: []string{}, ToRemove: []string{}}
	for _, v := range incoming {
		if !have.Contains(v) {
			d.ToAdd = append(d.ToAdd, v)
		}
	}
	for _, v := range existing {
		if want.Contains(v) {
			d.Unchanged = append(d.Unchanged, v)
		}
	}
	return d
}
