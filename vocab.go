package wordstress

import (
	"encoding/json"
	"sort"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var v Vocab
	serializer.RegisterTypedDeserializer(v.SerializerType(), DeserializeVocab)
}

// A Vocab maps characters to positive integer IDs.
//
// A Vocab is represented as a sorted list of characters.
// A character's ID is its index in the list plus one.
// The ID 0 is reserved for characters that are not in the
// vocabulary; the same ID marks padding in encoded input.
//
// A Vocab built twice from the same words is identical,
// so encodings can be reproduced from a saved Vocab.
type Vocab []rune

// DeserializeVocab deserializes a Vocab.
func DeserializeVocab(d []byte) (Vocab, error) {
	var chars string
	if err := json.Unmarshal(d, &chars); err != nil {
		return nil, essentials.AddCtx("deserialize Vocab", err)
	}
	return Vocab(chars), nil
}

// NewVocab builds a Vocab out of the distinct characters
// in the words.
func NewVocab(words []string) Vocab {
	seen := map[rune]bool{}
	var chars Vocab
	for _, word := range words {
		for _, ch := range word {
			if !seen[ch] {
				seen[ch] = true
				chars = append(chars, ch)
			}
		}
	}
	sort.Slice(chars, func(i, j int) bool {
		return chars[i] < chars[j]
	})
	return chars
}

// ID gets the ID for the character.
//
// The ID 0 is returned for unknown characters.
func (v Vocab) ID(ch rune) int {
	idx := sort.Search(len(v), func(i int) bool {
		return v[i] >= ch
	})
	if idx == len(v) || v[idx] != ch {
		return 0
	}
	return idx + 1
}

// Size returns the number of IDs, including the reserved
// ID 0.
func (v Vocab) Size() int {
	return len(v) + 1
}

// Encode computes the ID for each character of the word.
func (v Vocab) Encode(word string) []int {
	var res []int
	for _, ch := range word {
		res = append(res, v.ID(ch))
	}
	return res
}

// SerializerType returns the unique ID used to serialize
// a Vocab with the serializer package.
func (v Vocab) SerializerType() string {
	return "github.com/unixpickle/wordstress.Vocab"
}

// Serialize serializes the Vocab.
func (v Vocab) Serialize() ([]byte, error) {
	return json.Marshal(string(v))
}
