package wordstress

import (
	"math"
	"testing"

	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec/anyvec32"
)

func TestTrainEndToEnd(t *testing.T) {
	examples := []*Example{
		{ID: "1", Word: "cat", Syllables: 1, Stress: 1},
		{ID: "2", Word: "apple", Syllables: 2, Stress: 1},
		{ID: "3", Word: "banana", Syllables: 3, Stress: 2},
	}
	epochs := 0
	conf := Config{
		BatchSize:  3,
		Epochs:     20,
		StepSize:   0.01,
		EmbedSize:  8,
		HiddenSize: 16,
		StatusFunc: func(epoch int, cost, accuracy float64) {
			epochs++
			if math.IsNaN(cost) || math.IsInf(cost, 0) {
				t.Errorf("epoch %d: bad cost %f", epoch, cost)
			}
			if accuracy < 0 || accuracy > 1 {
				t.Errorf("epoch %d: bad accuracy %f", epoch, accuracy)
			}
		},
	}
	vocab, model, err := Train(anyvec32.CurrentCreator(), conf, examples, nil)
	if err != nil {
		t.Fatal(err)
	}
	if epochs != conf.Epochs {
		t.Errorf("expected %d status calls but got %d", conf.Epochs, epochs)
	}
	if model.ClassCount != 3 {
		t.Errorf("expected class count 3 but got %d", model.ClassCount)
	}
	if vocab.Size() != 9 {
		t.Errorf("expected vocab size 9 but got %d", vocab.Size())
	}

	preds, err := Predict(model, vocab, conf.BatchSize, []*Example{
		{ID: "1", Word: "cat", Syllables: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if preds[0].Stress != 1 {
		t.Errorf("expected stress 1 but got %d", preds[0].Stress)
	}
}

func TestTrainBidir(t *testing.T) {
	examples := []*Example{
		{ID: "1", Word: "cat", Syllables: 1, Stress: 1},
		{ID: "2", Word: "apple", Syllables: 2, Stress: 1},
		{ID: "3", Word: "banana", Syllables: 3, Stress: 2},
	}
	conf := Config{
		BatchSize:  2,
		Epochs:     3,
		StepSize:   0.01,
		EmbedSize:  8,
		HiddenSize: 16,
		Bidir:      true,
		Noise:      0.1,
	}
	vocab, model, err := Train(anyvec32.CurrentCreator(), conf, examples, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !model.Bidir() {
		t.Error("expected a bidirectional model")
	}
	if _, _, err := Evaluate(model, vocab, conf.BatchSize, examples); err != nil {
		t.Fatal(err)
	}
}

func TestTrainBadData(t *testing.T) {
	examples := []*Example{
		{ID: "1", Word: "cat", Syllables: 1, Stress: 1},
		{ID: "2", Word: "apple", Syllables: 2, Stress: 3},
	}
	conf := Config{Epochs: 1, StepSize: 0.01, EmbedSize: 4, HiddenSize: 4}
	if _, _, err := Train(anyvec32.CurrentCreator(), conf, examples, nil); err == nil {
		t.Error("expected error for out-of-range stress")
	}
}

// Accuracy must be the exact match rate.
func TestEvaluateAccuracy(t *testing.T) {
	c := anyvec32.CurrentCreator()
	vocab, model := testingModel(false, 0)

	// Zeroed output layer: every word gets equal scores,
	// so decoding always picks position 1.
	fc := model.Out.(*anynet.FC)
	fc.Weights.Vector.Scale(c.MakeNumeric(0))
	fc.Biases.Vector.Scale(c.MakeNumeric(0))

	var examples []*Example
	for i := 0; i < 10; i++ {
		stress := 1
		if i >= 7 {
			stress = 2
		}
		examples = append(examples, &Example{
			ID:        string(rune('a' + i)),
			Word:      "abcde",
			Syllables: 2,
			Stress:    stress,
		})
	}
	_, accuracy, err := Evaluate(model, vocab, 4, examples)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(accuracy-0.7) > 1e-9 {
		t.Errorf("expected accuracy 0.7 but got %f", accuracy)
	}
}

func TestPredictOrder(t *testing.T) {
	vocab, model := testingModel(false, 0)
	examples := []*Example{
		{ID: "one", Word: "ab", Syllables: 1},
		{ID: "two", Word: "abcde", Syllables: 3},
		{ID: "three", Word: "ed", Syllables: 2},
		{ID: "four", Word: "c", Syllables: 1},
		{ID: "five", Word: "dcba", Syllables: 2},
	}
	preds, err := Predict(model, vocab, 2, examples)
	if err != nil {
		t.Fatal(err)
	}
	if len(preds) != len(examples) {
		t.Fatalf("expected %d predictions but got %d", len(examples), len(preds))
	}
	for i, example := range examples {
		if preds[i].ID != example.ID || preds[i].Word != example.Word {
			t.Errorf("prediction %d: expected %s but got %s", i, example.ID,
				preds[i].ID)
		}
		if preds[i].Stress < 1 || preds[i].Stress > example.Syllables {
			t.Errorf("prediction %d: stress %d out of range", i, preds[i].Stress)
		}
	}

	// Grouping must not change the predictions.
	for _, batchSize := range []int{1, len(examples)} {
		regrouped, err := Predict(model, vocab, batchSize, examples)
		if err != nil {
			t.Fatal(err)
		}
		for i, pred := range regrouped {
			if pred.Stress != preds[i].Stress {
				t.Errorf("batch size %d: prediction %d: expected %d but got %d",
					batchSize, i, preds[i].Stress, pred.Stress)
			}
		}
	}
}
