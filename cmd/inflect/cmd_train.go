package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var trainForce bool

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Detect the direction bias and build the rule tables",
	Long: `Reads the training corpus, decides whether the language is prefixing
or suffixing, extracts rules from every triple and caches the result.
Existing cache artifacts are reused unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().BoolVar(&trainForce, "force", false, "clear the cache before training")
}

func runTrain(cmd *cobra.Command, args []string) error {
	if trainForce {
		if err := cfg.NewCache().Clear(); err != nil {
			return err
		}
	}
	in, err := openInflector()
	if err != nil {
		return err
	}

	b, m := in.Bias(), in.Model()
	out := cmd.OutOrStdout()
	direction := "suffixing"
	if b.Prefixing() {
		direction = "prefixing"
	}
	fmt.Fprintf(out, "direction:    %s (prefix bias %d, suffix bias %d)\n", direction, b.Prefix, b.Suffix)
	fmt.Fprintf(out, "msds:         %d\n", len(m.MSDs()))
	fmt.Fprintf(out, "prefix rules: %d\n", m.Prefix.Size())
	fmt.Fprintf(out, "suffix rules: %d\n", m.Suffix.Size())
	return nil
}
