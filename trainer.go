package wordstress

import (
	"math/rand"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// DefaultBatchSize is used by a Trainer with no explicit
// batch size.
const DefaultBatchSize = 32

// A Trainer fits a Model to labeled Examples with
// mini-batch gradient descent.
type Trainer struct {
	Model *Model
	Vocab Vocab

	// BatchSize is the mini-batch size.
	// If it is 0, DefaultBatchSize is used.
	BatchSize int

	// StepSize scales each parameter update.
	StepSize float64

	// Transformer pre-processes gradients.
	// If it is nil, a fresh anysgd.Adam is used.
	Transformer anysgd.Transformer

	// StatusFunc, if non-nil, is called after each epoch
	// with the mean cost and accuracy over the samples.
	StatusFunc func(epoch int, cost, accuracy float64)

	// LastCost is the cost from the latest mini-batch.
	LastCost anyvec.Numeric
}

// Fetch assembles a labeled Batch for the samples.
// The samples must be a SampleList.
func (t *Trainer) Fetch(s anysgd.SampleList) (anysgd.Batch, error) {
	batch, err := NewBatch(t.creator(), t.Vocab, s.(SampleList),
		t.Model.ClassCount, true, t.Model.Bidir())
	if err != nil {
		return nil, essentials.AddCtx("fetch batch", err)
	}
	return batch, nil
}

// TotalCost computes the mean masked cross-entropy cost
// over the Batch.
func (t *Trainer) TotalCost(b *Batch) anydiff.Res {
	logits := t.Model.Apply(b, true)
	costs := maskedCrossEntropy(logits, b.Targets, b.Counts, t.Model.ClassCount)
	total := anydiff.Sum(costs)
	c := total.Output().Creator()
	return anydiff.Scale(total, c.MakeNumeric(1/float64(b.N)))
}

// Gradient computes the cost gradient for the Batch,
// which must be a *Batch.
//
// It also sets t.LastCost.
func (t *Trainer) Gradient(s anysgd.Batch) anydiff.Grad {
	grad := anydiff.NewGrad(t.Model.Parameters()...)
	cost := t.TotalCost(s.(*Batch))
	t.LastCost = anyvec.Sum(cost.Output())

	c := cost.Output().Creator()
	upstream := c.MakeVectorData(c.MakeNumericList([]float64{1}))
	cost.Propagate(upstream, grad)

	return grad
}

// Run performs the given number of training epochs.
//
// Each epoch shuffles the samples, takes one gradient
// step per mini-batch, and then measures the cost and
// accuracy of the updated Model over all of the samples.
//
// Training stops early, at an epoch boundary, once the
// done channel is closed.
func (t *Trainer) Run(samples SampleList, epochs int, done <-chan struct{}) error {
	batchSize := t.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	transformer := t.Transformer
	if transformer == nil {
		transformer = &anysgd.Adam{}
	}
	c := t.creator()
	for epoch := 0; epoch < epochs; epoch++ {
		select {
		case <-done:
			return nil
		default:
		}
		for i := samples.Len() - 1; i > 0; i-- {
			samples.Swap(i, rand.Intn(i+1))
		}
		for start := 0; start < samples.Len(); start += batchSize {
			end := start + batchSize
			if end > samples.Len() {
				end = samples.Len()
			}
			batch, err := t.Fetch(samples.Slice(start, end))
			if err != nil {
				return err
			}
			grad := transformer.Transform(t.Gradient(batch))
			grad.Scale(c.MakeNumeric(-t.StepSize))
			grad.AddToVars()
		}
		if t.StatusFunc != nil {
			cost, acc, err := Evaluate(t.Model, t.Vocab, batchSize, samples)
			if err != nil {
				return err
			}
			t.StatusFunc(epoch, cost, acc)
		}
	}
	return nil
}

func (t *Trainer) creator() anyvec.Creator {
	return t.Model.Embedding.Vector.Creator()
}
