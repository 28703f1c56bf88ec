package wordstress

import (
	"fmt"

	"github.com/unixpickle/anyseq"
	"github.com/unixpickle/anyvec"
)

// A Batch is a group of encoded Examples, ready to feed
// to a Model.
//
// Inputs holds one sequence of one-hot character vectors
// per Example, in the caller's order. Reversed holds the
// same sequences with their timesteps reversed; it is
// only populated for batches meant for bidirectional
// models. Sequences in a batch may have different
// lengths; a sequence only occupies its own timesteps,
// so no padding ever reaches the encoder.
//
// Counts holds each Example's syllable count. Targets
// holds each labeled Example's 0-indexed stress position.
type Batch struct {
	Inputs   anyseq.Seq
	Reversed anyseq.Seq
	Counts   []int
	Targets  []int
	N        int
}

// NewBatch encodes the Examples with the Vocab and
// assembles them into a Batch.
//
// Every Example's syllable count must be covered by
// classCount. If labeled is true, every Example must
// carry a valid stress label. If reversed is true, the
// Batch also carries reversed sequences for use with a
// bidirectional Model.
//
// A data-integrity violation results in an error; no
// Example is ever silently dropped.
func NewBatch(c anyvec.Creator, vocab Vocab, examples []*Example, classCount int,
	labeled, reversed bool) (*Batch, error) {
	res := &Batch{
		Counts: make([]int, len(examples)),
		N:      len(examples),
	}
	if labeled {
		res.Targets = make([]int, len(examples))
	}
	seqs := make([][]anyvec.Vector, len(examples))
	var revSeqs [][]anyvec.Vector
	if reversed {
		revSeqs = make([][]anyvec.Vector, len(examples))
	}
	for i, example := range examples {
		if err := example.Check(labeled); err != nil {
			return nil, err
		}
		if example.Syllables > classCount {
			return nil, fmt.Errorf("example %s: syllable count %d exceeds "+
				"class count %d", example.ID, example.Syllables, classCount)
		}
		ids := vocab.Encode(example.Word)
		vecs := make([]anyvec.Vector, len(ids))
		for t, id := range ids {
			vecs[t] = oneHot(c, vocab.Size(), id)
		}
		seqs[i] = vecs
		if reversed {
			rev := make([]anyvec.Vector, len(vecs))
			for t, vec := range vecs {
				rev[len(vecs)-(t+1)] = vec
			}
			revSeqs[i] = rev
		}
		res.Counts[i] = example.Syllables
		if labeled {
			res.Targets[i] = example.Stress - 1
		}
	}
	res.Inputs = anyseq.ConstSeqList(c, seqs)
	if reversed {
		res.Reversed = anyseq.ConstSeqList(c, revSeqs)
	}
	return res, nil
}

func oneHot(c anyvec.Creator, size, id int) anyvec.Vector {
	data := make([]float64, size)
	data[id] = 1
	return c.MakeVectorData(c.MakeNumericList(data))
}
