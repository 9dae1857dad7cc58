package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cours-de-latin/inflect"
)

var (
	evalTest   bool
	evalOutput bool
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Score predictions on the dev (or test) set",
	Long: `Predicts a form for every triple of the dev set and reports accuracy.
With --test the test set is used instead; with --output every guess is
written to the output file as lemma, MSD and predicted form.`,
	Args: cobra.NoArgs,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().BoolVarP(&evalTest, "test", "t", false, "evaluate on the test set instead of dev")
	evalCmd.Flags().BoolVarP(&evalOutput, "output", "o", false, "write guesses to the output file")
}

func runEval(cmd *cobra.Command, args []string) error {
	in, err := openInflector()
	if err != nil {
		return err
	}

	path := cfg.DevPath()
	if evalTest {
		path = cfg.TestPath()
	}
	triples, err := inflect.ReadCorpusFile(path, cfg.Format())
	if err != nil {
		return err
	}
	logger.Info("evaluating", zap.String("path", path), zap.Int("triples", len(triples)))

	var w io.Writer
	if evalOutput {
		f, err := os.Create(cfg.OutputPath())
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	rep, err := in.Evaluate(triples, w)
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), cfg.Language, rep)
	return nil
}

func printReport(out io.Writer, lang string, rep *inflect.Report) {
	fmt.Fprintf(out, "%s: %.5f\n", lang, rep.Accuracy())
	fmt.Fprintf(out, "ignoring vowel length: %.5f\n", rep.LooseAccuracy())

	poses := make([]string, 0, len(rep.ByPOS))
	for p := range rep.ByPOS {
		poses = append(poses, string(p))
	}
	sort.Strings(poses)
	for _, p := range poses {
		s := rep.ByPOS[inflect.PartOfSpeech(p)]
		fmt.Fprintf(out, "  %-7s %.5f (%d/%d)\n", p, s.Accuracy(), s.Correct, s.Total)
	}
}
