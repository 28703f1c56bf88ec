package wordstress

import (
	"reflect"
	"testing"

	"github.com/unixpickle/serializer"
)

func TestVocabDeterminism(t *testing.T) {
	v1 := NewVocab([]string{"cat", "apple", "banana"})
	v2 := NewVocab([]string{"banana", "cat", "apple"})
	if !reflect.DeepEqual(v1, v2) {
		t.Errorf("expected %v but got %v", v1, v2)
	}
}

func TestVocabIDs(t *testing.T) {
	v := NewVocab([]string{"cat", "apple", "banana"})
	if v.Size() != 9 {
		t.Errorf("expected size 9 but got %d", v.Size())
	}
	seen := map[int]bool{}
	for _, ch := range "catplebn" {
		id := v.ID(ch)
		if id <= 0 || id >= v.Size() {
			t.Errorf("character %q: ID %d out of range", ch, id)
		}
		if seen[id] {
			t.Errorf("character %q: duplicate ID %d", ch, id)
		}
		seen[id] = true
	}
	if id := v.ID('z'); id != 0 {
		t.Errorf("unknown character: expected ID 0 but got %d", id)
	}
}

func TestVocabEncode(t *testing.T) {
	v := NewVocab([]string{"cat", "apple", "banana"})
	actual := v.Encode("cab")
	expected := []int{v.ID('c'), v.ID('a'), v.ID('b')}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
	withUnknown := v.Encode("caz")
	if withUnknown[2] != 0 {
		t.Errorf("expected 0 for unknown character but got %d", withUnknown[2])
	}
}

func TestVocabEmpty(t *testing.T) {
	v := NewVocab(nil)
	if v.Size() != 1 {
		t.Errorf("expected size 1 but got %d", v.Size())
	}
	for _, id := range v.Encode("cat") {
		if id != 0 {
			t.Errorf("expected ID 0 but got %d", id)
		}
	}
}

func TestVocabSerialize(t *testing.T) {
	v := NewVocab([]string{"cat", "apple", "banana"})
	data, err := serializer.SerializeAny(v)
	if err != nil {
		t.Fatal(err)
	}
	var v1 Vocab
	if err := serializer.DeserializeAny(data, &v1); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, v1) {
		t.Errorf("expected %v but got %v", v, v1)
	}
}
