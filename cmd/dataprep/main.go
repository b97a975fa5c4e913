package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/dasmlab/fassara/pkg/dataset"
)

var (
	input      = flag.String("input", "", "Input pair file (.csv, .json, or .txt)")
	output     = flag.String("output", "data/pairs.json", "Output JSON file")
	minChars   = flag.Int("min-chars", 5, "Drop pairs where either side is shorter")
	maxChars   = flag.Int("max-chars", 200, "Drop pairs where either side is longer")
	stripExtra = flag.Bool("strip-extra", false, "Aggressively strip unusual characters")
	keepDupes  = flag.Bool("keep-duplicates", false, "Keep duplicate pairs")
	skipScript = flag.Bool("skip-script-check", false, "Skip the Latin-script check on the English side")
	sample     = flag.Bool("sample", false, "Write the built-in sample corpus instead of reading -input")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if *sample {
		pairs := dataset.SamplePairs()
		if err := dataset.WriteJSON(*output, pairs); err != nil {
			logger.WithError(err).Fatal("Failed to write sample corpus")
		}
		logger.WithFields(logrus.Fields{
			"pairs":  len(pairs),
			"output": *output,
		}).Info("Wrote sample corpus")
		return
	}

	if *input == "" {
		logger.Fatal("Either -input or -sample must be provided")
	}

	pairs, err := dataset.LoadPairs(*input)
	if err != nil {
		logger.WithError(err).Fatalf("Failed to load pairs from %s", *input)
	}
	logger.WithFields(logrus.Fields{
		"pairs": len(pairs),
		"input": *input,
	}).Info("Loaded sentence pairs")

	cleaned := dataset.Preprocess(pairs, dataset.Options{
		MinChars:        *minChars,
		MaxChars:        *maxChars,
		StripExtraChars: *stripExtra,
		KeepDuplicates:  *keepDupes,
		SkipScriptCheck: *skipScript,
	})
	logger.WithFields(logrus.Fields{
		"kept":    len(cleaned),
		"dropped": len(pairs) - len(cleaned),
	}).Info("Preprocessed sentence pairs")

	if err := dataset.WriteJSON(*output, cleaned); err != nil {
		logger.WithError(err).Fatal("Failed to write output")
	}
	logger.WithFields(logrus.Fields{
		"pairs":  len(cleaned),
		"output": *output,
	}).Info("Wrote cleaned corpus")
}
