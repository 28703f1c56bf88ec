package wordstress

import (
	"errors"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// A Config describes a full training run.
type Config struct {
	BatchSize  int
	Epochs     int
	StepSize   float64
	EmbedSize  int
	HiddenSize int
	Bidir      bool
	Noise      float64

	// StatusFunc, if non-nil, receives per-epoch stats.
	StatusFunc func(epoch int, cost, accuracy float64)
}

// A Prediction is the decoded stress position for one
// input Example.
type Prediction struct {
	ID     string
	Word   string
	Stress int
}

// Train builds a Vocab from the Examples, creates a
// Model whose class count covers the highest observed
// syllable count, and fits it to the Examples.
//
// Training stops early, at an epoch boundary, once the
// done channel is closed. A nil done channel disables
// early stopping.
//
// The returned Vocab and Model form a matched pair and
// should be persisted together with SaveCheckpoint.
func Train(c anyvec.Creator, conf Config, examples []*Example,
	done <-chan struct{}) (Vocab, *Model, error) {
	if len(examples) == 0 {
		return nil, nil, errors.New("train: no examples")
	}
	words := make([]string, len(examples))
	classCount := 0
	for i, example := range examples {
		if err := example.Check(true); err != nil {
			return nil, nil, essentials.AddCtx("train", err)
		}
		words[i] = example.Word
		if example.Syllables > classCount {
			classCount = example.Syllables
		}
	}
	vocab := NewVocab(words)
	model := NewModel(c, ModelConfig{
		VocabSize:  vocab.Size(),
		EmbedSize:  conf.EmbedSize,
		HiddenSize: conf.HiddenSize,
		ClassCount: classCount,
		Bidir:      conf.Bidir,
		Noise:      conf.Noise,
	})
	trainer := &Trainer{
		Model:      model,
		Vocab:      vocab,
		BatchSize:  conf.BatchSize,
		StepSize:   conf.StepSize,
		StatusFunc: conf.StatusFunc,
	}
	samples := append(SampleList{}, examples...)
	if err := trainer.Run(samples, conf.Epochs, done); err != nil {
		return nil, nil, essentials.AddCtx("train", err)
	}
	return vocab, model, nil
}

// Evaluate measures the Model's mean masked cost and
// exact-match accuracy over labeled Examples, with no
// parameter updates and no training noise.
func Evaluate(m *Model, vocab Vocab, batchSize int,
	examples []*Example) (cost, accuracy float64, err error) {
	if len(examples) == 0 {
		return 0, 0, errors.New("evaluate: no examples")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	c := m.Embedding.Vector.Creator()
	var totalCost float64
	var correct int
	for start := 0; start < len(examples); start += batchSize {
		end := start + batchSize
		if end > len(examples) {
			end = len(examples)
		}
		chunk := examples[start:end]
		batch, err := NewBatch(c, vocab, chunk, m.ClassCount, true, m.Bidir())
		if err != nil {
			return 0, 0, essentials.AddCtx("evaluate", err)
		}
		logits := m.Apply(batch, false)
		costs := maskedCrossEntropy(logits, batch.Targets, batch.Counts,
			m.ClassCount)
		totalCost += numericFloat(anyvec.Sum(costs.Output()))
		for i, stress := range Decode(logits.Output(), batch.Counts) {
			if stress == chunk[i].Stress {
				correct++
			}
		}
	}
	n := float64(len(examples))
	return totalCost / n, float64(correct) / n, nil
}

// Predict decodes the stressed syllable for each
// Example, which need not be labeled.
//
// The results preserve the Examples' order and IDs.
func Predict(m *Model, vocab Vocab, batchSize int,
	examples []*Example) ([]Prediction, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	c := m.Embedding.Vector.Creator()
	res := make([]Prediction, 0, len(examples))
	for start := 0; start < len(examples); start += batchSize {
		end := start + batchSize
		if end > len(examples) {
			end = len(examples)
		}
		chunk := examples[start:end]
		batch, err := NewBatch(c, vocab, chunk, m.ClassCount, false, m.Bidir())
		if err != nil {
			return nil, essentials.AddCtx("predict", err)
		}
		logits := m.Apply(batch, false)
		for i, stress := range Decode(logits.Output(), batch.Counts) {
			res = append(res, Prediction{
				ID:     chunk[i].ID,
				Word:   chunk[i].Word,
				Stress: stress,
			})
		}
	}
	return res, nil
}
