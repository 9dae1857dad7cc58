package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cours-de-latin/inflect"
	"github.com/cours-de-latin/inflect/internal/store"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect, export and import the learned rule tables",
}

var (
	rulesPrefix bool
	rulesLimit  int
	rulesDB     string
)

var rulesShowCmd = &cobra.Command{
	Use:   "show [msd]",
	Short: "List the most frequent rules learned for an MSD",
	Long: `Lists rules from the cached model, or with --db from a SQLite
database written by "inflect rules export".`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesShow,
}

var rulesExportCmd = &cobra.Command{
	Use:   "export [sqlite-path]",
	Short: "Write the rule tables and bias to a SQLite database",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesExport,
}

var rulesImportCmd = &cobra.Command{
	Use:   "import [sqlite-path]",
	Short: "Replace the cached model with one from a SQLite database",
	Long: `Reads the rule tables and bias stored by "inflect rules export" and
writes them to the cache, so a model can move between machines without
the training corpus. A running server with server.watch set picks the
new model up.`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesImport,
}

func init() {
	rulesShowCmd.Flags().BoolVar(&rulesPrefix, "prefix", false, "show prefix rules instead of suffix rules")
	rulesShowCmd.Flags().IntVarP(&rulesLimit, "limit", "n", 20, "number of rules to show (0 for all)")
	rulesShowCmd.Flags().StringVar(&rulesDB, "db", "", "read rules from this SQLite database instead of the cache")
	rulesCmd.AddCommand(rulesShowCmd, rulesExportCmd, rulesImportCmd)
}

func runRulesShow(cmd *cobra.Command, args []string) error {
	kind := inflect.SuffixRules
	if rulesPrefix {
		kind = inflect.PrefixRules
	}

	var rules []inflect.RuleCount
	if rulesDB != "" {
		ctx := cmd.Context()
		st, err := store.Open(ctx, rulesDB)
		if err != nil {
			return err
		}
		defer st.Close()
		limit := rulesLimit
		if limit <= 0 {
			limit = -1
		}
		if rules, err = st.TopRules(ctx, kind, args[0], limit); err != nil {
			return err
		}
	} else {
		in, err := openInflector()
		if err != nil {
			return err
		}
		rules = in.Model().Table(kind).Rules(args[0])
		if rulesLimit > 0 && len(rules) > rulesLimit {
			rules = rules[:rulesLimit]
		}
	}

	out := cmd.OutOrStdout()
	for _, rc := range rules {
		fmt.Fprintf(out, "%6d\t%s\t%s\n", rc.Count, rc.Input, rc.Output)
	}
	return nil
}

func runRulesExport(cmd *cobra.Command, args []string) error {
	in, err := openInflector()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	st, err := store.Open(ctx, args[0])
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Export(ctx, in.Model(), in.Bias()); err != nil {
		return err
	}
	logger.Info("rule tables exported", zap.String("path", args[0]))
	return nil
}

func runRulesImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := store.Open(ctx, args[0])
	if err != nil {
		return err
	}
	defer st.Close()

	m, b, err := st.Load(ctx)
	if err != nil {
		return err
	}
	if len(m.MSDs()) == 0 {
		return fmt.Errorf("%s holds no rules", args[0])
	}

	// Tables before bias: a watching server reloads once all three exist.
	c := cfg.NewCache()
	if err := c.SaveModel(m); err != nil {
		return err
	}
	if err := c.SaveBias(b); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d msds, %d prefix rules, %d suffix rules\n",
		len(m.MSDs()), m.Prefix.Size(), m.Suffix.Size())
	return nil
}
