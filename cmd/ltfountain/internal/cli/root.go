// Package cli wires the ltfountain cobra command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/fountaincodec/lt/internal/config"
	"github.com/fountaincodec/lt/internal/obs"
)

var (
	configPath string
	jsonLogs   bool
	debugLogs  bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ltfountain",
		Short: "Luby Transform fountain codec demo CLI",
		Long: "ltfountain drives the lt package's encoder and decoder over a file,\n" +
			"simulating channel loss, to demonstrate fountain-coded recovery.",
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML transfer config")
	root.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit JSON logs instead of colorized console logs")
	root.PersistentFlags().BoolVar(&debugLogs, "debug", false, "enable debug-level logging")

	root.AddCommand(newDemoCmd())
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newDecodeCmd())

	return root
}

// Execute runs the ltfountain CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func loadConfig() (config.Transfer, error) {
	return config.Load(configPath)
}

func setupLogging() {
	obs.New(obs.Options{JSON: jsonLogs, Debug: debugLogs})
}
