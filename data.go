package wordstress

import (
	"fmt"

	"github.com/unixpickle/anynet/anysgd"
)

// An Example is one word with its externally-supplied
// syllable count and, for labeled data, the 1-indexed
// syllable that carries primary stress.
//
// A Stress of 0 marks an unlabeled Example.
type Example struct {
	ID        string
	Word      string
	Syllables int
	Stress    int
}

// Check validates the integrity of the Example.
//
// If labeled is true, the stress label must be present
// and lie in [1, Syllables].
func (e *Example) Check(labeled bool) error {
	if len(e.Word) == 0 {
		return fmt.Errorf("example %s: empty word", e.ID)
	}
	if e.Syllables < 1 {
		return fmt.Errorf("example %s: syllable count %d out of range", e.ID,
			e.Syllables)
	}
	if labeled && (e.Stress < 1 || e.Stress > e.Syllables) {
		return fmt.Errorf("example %s: stress %d out of range [1, %d]", e.ID,
			e.Stress, e.Syllables)
	}
	return nil
}

// A SampleList is an anysgd.SampleList of Examples.
type SampleList []*Example

// Len returns the number of Examples.
func (s SampleList) Len() int {
	return len(s)
}

// Swap swaps two Examples.
func (s SampleList) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// Slice copies a sub-range of the list.
func (s SampleList) Slice(i, j int) anysgd.SampleList {
	return append(SampleList{}, s[i:j]...)
}
