// Package cmd is for command line interactions with the orfanno application
package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "orfanno",
	Short: `Annotate assembled contigs: call ORFs, search their proteins for homologs
and write the qualified CDS features as GenBank`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// set flags
func init() {
	RootCmd.PersistentFlags().StringP("settings", "s", "", "settings file (default ~/.orfanno/settings.toml if present)")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log each step in detail")

	viper.BindPFlag("settings", RootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.New(os.Stderr, "", 0).Fatalf("%v", err)
	}
}
