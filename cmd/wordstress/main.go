// Command wordstress trains a stress-prediction model on
// a labeled word list, or predicts stress positions for
// new words with a saved checkpoint.
//
// Training data is CSV with one word per row:
//
//	id,word,syllables,stress
//
// Prediction input drops the stress column. Prediction
// output is CSV with rows of id,word,stress.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/wordstress"
)

func main() {
	var mode string
	var dataPath string
	var checkpointPath string
	var outPath string
	var conf wordstress.Config

	flag.StringVar(&mode, "mode", "train", "run mode (train or predict)")
	flag.StringVar(&dataPath, "data", "", "path to input CSV data")
	flag.StringVar(&checkpointPath, "checkpoint", "model_out",
		"path to the checkpoint file")
	flag.StringVar(&outPath, "out", "", "prediction output path (default stdout)")
	flag.IntVar(&conf.BatchSize, "batch", wordstress.DefaultBatchSize,
		"mini-batch size")
	flag.IntVar(&conf.Epochs, "epochs", 10, "number of training epochs")
	flag.Float64Var(&conf.StepSize, "step", 0.001, "gradient step size")
	flag.IntVar(&conf.EmbedSize, "embedding", 32, "character embedding size")
	flag.IntVar(&conf.HiddenSize, "hidden", 128, "LSTM state size")
	flag.BoolVar(&conf.Bidir, "bidir", false, "read words in both directions")
	flag.Float64Var(&conf.Noise, "noise", 0,
		"stddev of training noise on word summaries")
	flag.Parse()

	if dataPath == "" {
		essentials.Die("Required flag: -data. See -help.")
	}

	switch mode {
	case "train":
		train(conf, dataPath, checkpointPath)
	case "predict":
		predict(dataPath, checkpointPath, outPath, conf.BatchSize)
	default:
		essentials.Die("Unknown mode:", mode)
	}
}

func train(conf wordstress.Config, dataPath, checkpointPath string) {
	examples, err := readExamples(dataPath, true)
	if err != nil {
		essentials.Die(err)
	}
	log.Printf("Training on %d examples...", len(examples))
	conf.StatusFunc = func(epoch int, cost, accuracy float64) {
		log.Printf("epoch %d: cost=%f accuracy=%f", epoch, cost, accuracy)
	}

	done := make(chan struct{})
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		signal.Stop(interrupt)
		log.Println("Stopping after the current epoch...")
		close(done)
	}()

	vocab, model, err := wordstress.Train(anyvec32.CurrentCreator(), conf,
		examples, done)
	if err != nil {
		essentials.Die(err)
	}
	if err := wordstress.SaveCheckpoint(checkpointPath, vocab, model); err != nil {
		essentials.Die(err)
	}
	log.Printf("Saved checkpoint to %s.", checkpointPath)
}

func predict(dataPath, checkpointPath, outPath string, batchSize int) {
	vocab, model, err := wordstress.LoadCheckpoint(checkpointPath)
	if err != nil {
		essentials.Die(err)
	}
	examples, err := readExamples(dataPath, false)
	if err != nil {
		essentials.Die(err)
	}
	preds, err := wordstress.Predict(model, vocab, batchSize, examples)
	if err != nil {
		essentials.Die(err)
	}

	outFile := os.Stdout
	if outPath != "" {
		outFile, err = os.Create(outPath)
		if err != nil {
			essentials.Die(err)
		}
		defer outFile.Close()
	}
	w := csv.NewWriter(outFile)
	for _, pred := range preds {
		record := []string{pred.ID, pred.Word, strconv.Itoa(pred.Stress)}
		if err := w.Write(record); err != nil {
			essentials.Die(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		essentials.Die(err)
	}
}

func readExamples(path string, labeled bool) ([]*wordstress.Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wantFields := 3
	if labeled {
		wantFields = 4
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = wantFields

	var res []*wordstress.Example
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, essentials.AddCtx("read "+path, err)
		}
		example := &wordstress.Example{ID: record[0], Word: record[1]}
		example.Syllables, err = strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("read %s: example %s: bad syllable count %q",
				path, example.ID, record[2])
		}
		if labeled {
			example.Stress, err = strconv.Atoi(record[3])
			if err != nil {
				return nil, fmt.Errorf("read %s: example %s: bad stress %q",
					path, example.ID, record[3])
			}
		}
		res = append(res, example)
	}
	return res, nil
}
