package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cours-de-latin/inflect"
)

var predictCmd = &cobra.Command{
	Use:   "predict [lemma] [msd]",
	Short: "Predict the form of a lemma for an MSD",
	Long: `Prints the predicted form. An MSD never seen in training yields the
lemma unchanged.

Example:
  inflect predict amō "V;IND;ACT;PRS;3;SG"`,
	Args: cobra.ExactArgs(2),
	RunE: runPredict,
}

var (
	paradigmPOS   string
	paradigmForms bool
)

var paradigmCmd = &cobra.Command{
	Use:   "paradigm [lemma]",
	Short: "Predict a form for every known MSD of a lemma",
	Args:  cobra.ExactArgs(1),
	RunE:  runParadigm,
}

func init() {
	paradigmCmd.Flags().StringVar(&paradigmPOS, "pos", "", "restrict to one part of speech (N, PROPN, ADJ, V, V.PTCP)")
	paradigmCmd.Flags().BoolVar(&paradigmForms, "forms", false, "print only the distinct forms, one per line")
}

func runPredict(cmd *cobra.Command, args []string) error {
	in, err := openInflector()
	if err != nil {
		return err
	}
	form, err := in.Inflect(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), form)
	return nil
}

func runParadigm(cmd *cobra.Command, args []string) error {
	in, err := openInflector()
	if err != nil {
		return err
	}
	table, err := in.InflectionTable(args[0], inflect.PartOfSpeech(paradigmPOS))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if paradigmForms {
		for _, f := range table.Forms() {
			fmt.Fprintln(out, f)
		}
		return nil
	}

	msds := make([]string, 0, len(table.Cells))
	for msd := range table.Cells {
		msds = append(msds, msd)
	}
	sort.Strings(msds)
	for _, msd := range msds {
		fmt.Fprintf(out, "%s\t%s\t%s\n", table.Lemma, msd, table.Cells[msd])
	}
	return nil
}
