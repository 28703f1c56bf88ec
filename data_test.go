package wordstress

import (
	"testing"

	"github.com/unixpickle/anyvec/anyvec32"
)

func TestExampleCheck(t *testing.T) {
	cases := []struct {
		Name    string
		Example Example
		Labeled bool
		OK      bool
	}{
		{"Valid", Example{ID: "1", Word: "banana", Syllables: 3, Stress: 2}, true, true},
		{"ValidUnlabeled", Example{ID: "2", Word: "cat", Syllables: 1}, false, true},
		{"EmptyWord", Example{ID: "3", Syllables: 1, Stress: 1}, true, false},
		{"ZeroSyllables", Example{ID: "4", Word: "cat", Stress: 1}, true, false},
		{"MissingStress", Example{ID: "5", Word: "cat", Syllables: 1}, true, false},
		{"StressTooHigh", Example{ID: "6", Word: "cat", Syllables: 1, Stress: 2}, true, false},
	}
	for _, c := range cases {
		err := c.Example.Check(c.Labeled)
		if c.OK && err != nil {
			t.Errorf("%s: unexpected error: %s", c.Name, err)
		} else if !c.OK && err == nil {
			t.Errorf("%s: expected error", c.Name)
		}
	}
}

func TestBatchClassCount(t *testing.T) {
	c := anyvec32.CurrentCreator()
	vocab := NewVocab([]string{"overflow"})
	examples := []*Example{
		{ID: "1", Word: "overflow", Syllables: 3, Stress: 1},
	}
	if _, err := NewBatch(c, vocab, examples, 3, true, false); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	if _, err := NewBatch(c, vocab, examples, 2, true, false); err == nil {
		t.Error("expected error for class count 2")
	}
}

func TestBatchTargets(t *testing.T) {
	c := anyvec32.CurrentCreator()
	vocab := NewVocab([]string{"cat", "apple"})
	examples := []*Example{
		{ID: "1", Word: "apple", Syllables: 2, Stress: 1},
		{ID: "2", Word: "cat", Syllables: 1, Stress: 1},
	}
	batch, err := NewBatch(c, vocab, examples, 2, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if batch.N != 2 {
		t.Errorf("expected 2 examples but got %d", batch.N)
	}
	for i, count := range []int{2, 1} {
		if batch.Counts[i] != count {
			t.Errorf("example %d: expected count %d but got %d", i, count,
				batch.Counts[i])
		}
		if batch.Targets[i] != 0 {
			t.Errorf("example %d: expected target 0 but got %d", i,
				batch.Targets[i])
		}
	}
}
