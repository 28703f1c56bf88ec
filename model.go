// Package wordstress implements a character-level model
// which predicts the syllable of a word that carries
// primary stress.
package wordstress

import (
	"fmt"
	"math"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/anyseq"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvecsave"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	serializer.RegisterTypedDeserializer((&Model{}).SerializerType(),
		DeserializeModel)
}

// A ModelConfig describes the shape of a Model.
type ModelConfig struct {
	// VocabSize is the Vocab size, including the
	// reserved ID 0.
	VocabSize int

	// EmbedSize is the width of a character embedding.
	EmbedSize int

	// HiddenSize is the LSTM state size.
	HiddenSize int

	// ClassCount is the number of output classes. It
	// must be at least the highest syllable count of any
	// word the Model will ever see.
	ClassCount int

	// Bidir adds a second LSTM which reads each word
	// back to front.
	Bidir bool

	// Noise is the standard deviation of Gaussian noise
	// added to the word summary during training.
	// A value of 0 disables the noise.
	Noise float64
}

// A Model classifies a word's stressed syllable from its
// character sequence.
//
// Characters are embedded, fed through an LSTM (two
// LSTMs for bidirectional models), and the final state
// is projected to one score per syllable position.
type Model struct {
	VocabSize  int
	EmbedSize  int
	HiddenSize int
	ClassCount int
	Noise      float64

	// Embedding has one row per character ID.
	// Row 0 corresponds to unknown characters.
	Embedding *anydiff.Var

	Forward anyrnn.Block

	// Backward is nil for unidirectional models.
	Backward anyrnn.Block

	Out anynet.Layer
}

// DeserializeModel deserializes a Model.
func DeserializeModel(d []byte) (*Model, error) {
	var res Model
	var blockData serializer.Bytes
	err := serializer.DeserializeAny(
		d,
		&res.VocabSize,
		&res.EmbedSize,
		&res.HiddenSize,
		&res.ClassCount,
		&res.Noise,
		&blockData,
	)
	if err != nil {
		return nil, essentials.AddCtx("deserialize Model", err)
	}
	blocks, err := serializer.DeserializeSlice(blockData)
	if err != nil {
		return nil, essentials.AddCtx("deserialize Model", err)
	}
	if len(blocks) != 3 && len(blocks) != 4 {
		return nil, fmt.Errorf("deserialize Model: unexpected block count %d",
			len(blocks))
	}
	emb, ok := blocks[0].(*anyvecsave.S)
	if !ok {
		return nil, fmt.Errorf("deserialize Model: bad embedding type %T",
			blocks[0])
	}
	if emb.Vector.Len() != res.VocabSize*res.EmbedSize {
		return nil, fmt.Errorf("deserialize Model: embedding has %d values "+
			"but shape is %dx%d", emb.Vector.Len(), res.VocabSize, res.EmbedSize)
	}
	res.Embedding = anydiff.NewVar(emb.Vector)
	blocks = blocks[1:]
	if res.Forward, ok = blocks[0].(anyrnn.Block); !ok {
		return nil, fmt.Errorf("deserialize Model: bad block type %T", blocks[0])
	}
	if len(blocks) == 3 {
		if res.Backward, ok = blocks[1].(anyrnn.Block); !ok {
			return nil, fmt.Errorf("deserialize Model: bad block type %T",
				blocks[1])
		}
	}
	out := blocks[len(blocks)-1]
	if res.Out, ok = out.(anynet.Layer); !ok {
		return nil, fmt.Errorf("deserialize Model: bad output layer type %T",
			out)
	}
	return &res, nil
}

// NewModel creates a Model with randomized parameters.
func NewModel(c anyvec.Creator, conf ModelConfig) *Model {
	res := &Model{
		VocabSize:  conf.VocabSize,
		EmbedSize:  conf.EmbedSize,
		HiddenSize: conf.HiddenSize,
		ClassCount: conf.ClassCount,
		Noise:      conf.Noise,

		Embedding: anydiff.NewVar(c.MakeVector(conf.VocabSize * conf.EmbedSize)),
		Forward:   anyrnn.NewLSTM(c, conf.EmbedSize, conf.HiddenSize),
	}
	anyvec.Rand(res.Embedding.Vector, anyvec.Normal, nil)
	scaler := c.MakeNumeric(math.Sqrt(1 / float64(conf.EmbedSize)))
	res.Embedding.Vector.Scale(scaler)

	summarySize := conf.HiddenSize
	if conf.Bidir {
		res.Backward = anyrnn.NewLSTM(c, conf.EmbedSize, conf.HiddenSize)
		summarySize *= 2
	}
	res.Out = anynet.NewFC(c, summarySize, conf.ClassCount)
	return res
}

// Bidir reports whether the Model reads words in both
// directions.
func (m *Model) Bidir() bool {
	return m.Backward != nil
}

// Apply computes a score for each syllable position of
// each word in the Batch.
//
// The result is packed, with ClassCount scores per word,
// in the Batch's order.
//
// If training is true and the Model has a non-zero
// Noise, Gaussian noise is added to each word's summary
// vector before classification.
func (m *Model) Apply(b *Batch, training bool) anydiff.Res {
	if m.Backward != nil && b.Reversed == nil {
		panic("batch has no reversed sequences")
	}
	out := anyrnn.Map(m.embed(b.Inputs), m.Forward)
	summary := anyseq.Tail(out)
	if m.Backward != nil {
		backOut := anyrnn.Map(m.embed(b.Reversed), m.Backward)
		summary = anynet.ConcatMixer{}.Mix(summary, anyseq.Tail(backOut), b.N)
	}
	if training && m.Noise > 0 {
		c := summary.Output().Creator()
		noise := c.MakeVector(summary.Output().Len())
		anyvec.Rand(noise, anyvec.Normal, nil)
		noise.Scale(c.MakeNumeric(m.Noise))
		summary = anydiff.Add(summary, anydiff.NewConst(noise))
	}
	return m.Out.Apply(summary, b.N)
}

// Parameters returns all of the parameters which should
// be updated during training.
func (m *Model) Parameters() []*anydiff.Var {
	res := []*anydiff.Var{m.Embedding}
	res = append(res, anynet.AllParameters(m.Forward, m.Out)...)
	if m.Backward != nil {
		res = append(res, anynet.AllParameters(m.Backward)...)
	}
	return res
}

// SerializerType returns the unique ID used to serialize
// a Model with the serializer package.
func (m *Model) SerializerType() string {
	return "github.com/unixpickle/wordstress.Model"
}

// Serialize serializes the Model.
func (m *Model) Serialize() ([]byte, error) {
	blocks := []serializer.Serializer{
		&anyvecsave.S{Vector: m.Embedding.Vector},
		m.Forward.(serializer.Serializer),
	}
	if m.Backward != nil {
		blocks = append(blocks, m.Backward.(serializer.Serializer))
	}
	blocks = append(blocks, m.Out.(serializer.Serializer))
	blockData, err := serializer.SerializeSlice(blocks)
	if err != nil {
		return nil, err
	}
	return serializer.SerializeAny(
		m.VocabSize,
		m.EmbedSize,
		m.HiddenSize,
		m.ClassCount,
		m.Noise,
		serializer.Bytes(blockData),
	)
}

func (m *Model) embed(s anyseq.Seq) anyseq.Seq {
	return anyseq.Map(s, func(v anydiff.Res, n int) anydiff.Res {
		chars := &anydiff.Matrix{Data: v, Rows: n, Cols: m.VocabSize}
		table := &anydiff.Matrix{
			Data: m.Embedding,
			Rows: m.VocabSize,
			Cols: m.EmbedSize,
		}
		return anydiff.MatMul(false, false, chars, table).Data
	})
}
