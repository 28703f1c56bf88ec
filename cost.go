package wordstress

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
)

// Scores past a word's syllable count are pushed down by
// this much before the softmax, removing them from the
// distribution entirely.
const maskValue = -1e30

// maskedCrossEntropy computes the cross-entropy cost for
// each example, restricted to the example's first
// counts[i] scores.
//
// The logits are packed, classCount per example. Each
// target is a 0-indexed stress position and must lie in
// [0, counts[i]). Scores at positions counts[i] and up
// never influence the cost or its gradient.
func maskedCrossEntropy(logits anydiff.Res, targets, counts []int,
	classCount int) anydiff.Res {
	c := logits.Output().Creator()
	n := len(counts)
	mask := make([]float64, n*classCount)
	desired := make([]float64, n*classCount)
	for i, count := range counts {
		for j := count; j < classCount; j++ {
			mask[i*classCount+j] = maskValue
		}
		desired[i*classCount+targets[i]] = 1
	}
	maskRes := anydiff.NewConst(c.MakeVectorData(c.MakeNumericList(mask)))
	desiredRes := anydiff.NewConst(c.MakeVectorData(c.MakeNumericList(desired)))
	logProbs := anydiff.LogSoftmax(anydiff.Add(logits, maskRes), classCount)
	products := anydiff.Mul(logProbs, desiredRes)
	costs := anydiff.SumCols(&anydiff.Matrix{
		Data: products,
		Rows: n,
		Cols: classCount,
	})
	return anydiff.Scale(costs, c.MakeNumeric(-1))
}

// Decode picks the highest-scoring stress position for
// each example, considering only the example's first
// counts[i] scores.
//
// The logits are packed, with the same number of scores
// per example. The results are 1-indexed. Ties go to the
// earliest position, so decoding is deterministic.
func Decode(logits anyvec.Vector, counts []int) []int {
	data := vectorFloats(logits)
	classCount := logits.Len() / len(counts)
	res := make([]int, len(counts))
	for i, count := range counts {
		row := data[i*classCount : i*classCount+count]
		best := 0
		for j, x := range row {
			if x > row[best] {
				best = j
			}
		}
		res[i] = best + 1
	}
	return res
}

func vectorFloats(v anyvec.Vector) []float64 {
	switch data := v.Data().(type) {
	case []float64:
		return data
	case []float32:
		res := make([]float64, len(data))
		for i, x := range data {
			res[i] = float64(x)
		}
		return res
	default:
		panic("unsupported numeric type")
	}
}

func numericFloat(num anyvec.Numeric) float64 {
	switch num := num.(type) {
	case float64:
		return num
	case float32:
		return float64(num)
	default:
		panic("unsupported numeric type")
	}
}
