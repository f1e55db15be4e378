package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyflight/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective flight config",
	Long: `Load the flight config the same way play does, validate it, and print
it as YAML. Use the output as a starting point for a custom --config file.

Search order:
  --config, ~/.skyflight/configs/flight.yaml, ./configs/flight.yaml, built-in defaults

Examples:
  skyflight config
  skyflight config --config ./my-flight.yaml > flight.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadFlight()
	if err != nil {
		return err
	}
	data, err := config.MarshalFlight(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
