// Command inflect trains and runs the non-neural inflection baseline.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cours-de-latin/inflect"
	"github.com/cours-de-latin/inflect/internal/config"
	"github.com/cours-de-latin/inflect/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "inflect",
	Short: "Non-neural morphological inflection baseline",
	Long: `inflect learns prefix and suffix rewrite rules from (lemma, MSD, form)
triples and predicts inflected forms by applying the longest, most
frequent matching rule.

The direction bias and the rule tables are cached between runs. Delete
them with "inflect cache clear" after the training corpus changes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		logger, err = logging.New(cfg.Logging)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "inflect.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(trainCmd, evalCmd, predictCmd, paradigmCmd, rulesCmd, cacheCmd, splitCmd, serveCmd)
}

// openInflector loads or builds the model described by cfg.
func openInflector() (*inflect.Inflector, error) {
	opts := cfg.Options()
	opts.Logger = logger
	return inflect.Open(opts)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
