package wordstress

import (
	"fmt"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

// SaveCheckpoint persists the Vocab and Model as one
// bundle.
//
// The pair must be the one produced by a single training
// run: encodings at inference time are only meaningful
// under the Vocab the weights were trained with.
func SaveCheckpoint(path string, vocab Vocab, m *Model) error {
	if vocab.Size() != m.VocabSize {
		return fmt.Errorf("save checkpoint: vocab size %d does not match "+
			"model vocab size %d", vocab.Size(), m.VocabSize)
	}
	if err := serializer.SaveAny(path, vocab, m); err != nil {
		return essentials.AddCtx("save checkpoint", err)
	}
	return nil
}

// LoadCheckpoint restores a Vocab and Model bundle.
//
// It fails if the stored Vocab does not match the
// Model's recorded input shape, so a mismatched bundle
// can never produce silently corrupted predictions.
func LoadCheckpoint(path string) (Vocab, *Model, error) {
	var vocab Vocab
	var m *Model
	if err := serializer.LoadAny(path, &vocab, &m); err != nil {
		return nil, nil, essentials.AddCtx("load checkpoint", err)
	}
	if vocab.Size() != m.VocabSize {
		return nil, nil, fmt.Errorf("load checkpoint: vocab size %d does not "+
			"match model vocab size %d", vocab.Size(), m.VocabSize)
	}
	return vocab, m, nil
}
