package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cours-de-latin/inflect"
)

var splitInput string

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a full corpus into train, dev and test files",
	Long: `Partitions the corpus by lemma, stratified by part of speech, and
writes the configured train, dev and test files. Lines whose MSD
contains "+" are dropped when data.skip_compound is set.`,
	Args: cobra.NoArgs,
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().StringVarP(&splitInput, "input", "i", "", "full corpus (default <data.dir>/<language>)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	input := splitInput
	if input == "" {
		input = filepath.Join(cfg.Data.Dir, cfg.Language)
	}
	triples, err := inflect.ReadCorpusFile(input, cfg.Format())
	if err != nil {
		return err
	}

	train, dev, test := inflect.Split(triples, inflect.SplitOptions{
		DevFraction:  cfg.Split.DevFraction,
		TestFraction: cfg.Split.TestFraction,
		Seed:         cfg.Split.Seed,
	})
	for _, part := range []struct {
		path    string
		triples []inflect.Triple
	}{
		{cfg.TrainPath(), train},
		{cfg.DevPath(), dev},
		{cfg.TestPath(), test},
	} {
		if err := writeCorpus(part.path, part.triples); err != nil {
			return err
		}
		logger.Info("split written", zap.String("path", part.path), zap.Int("triples", len(part.triples)))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "train %d, dev %d, test %d\n", len(train), len(dev), len(test))
	return nil
}

func writeCorpus(path string, triples []inflect.Triple) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := inflect.WriteCorpus(f, triples); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
