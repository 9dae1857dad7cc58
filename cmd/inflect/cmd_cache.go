package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the cached bias and rule tables",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cached artifacts so the next run retrains",
	Long: `The cache is never checked against the corpus it was built from.
Run this after changing the training data.`,
	Args: cobra.NoArgs,
	RunE: runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c := cfg.NewCache()
	if err := c.Clear(); err != nil {
		return err
	}
	for _, p := range c.Paths() {
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", p)
	}
	return nil
}
