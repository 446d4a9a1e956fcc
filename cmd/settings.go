package cmd

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/jjtimmons/orfanno/config"
)

// settingsCmd prints the settings a run would use.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the resolved settings as TOML",
	Long: `Print the resolved settings as TOML

Settings come from defaults, then the settings file, then ORFANNO_* environment
variables (eg ORFANNO_BLAST_DB), then command line flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.New()
		if err != nil {
			return err
		}
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(c)
	},
}

func init() {
	RootCmd.AddCommand(settingsCmd)
}
