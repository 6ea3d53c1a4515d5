package controllers

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
)

// DefaultConfigFile is looked up in the working directory when --file is
// not given.
const DefaultConfigFile = "components.yaml"

// FlagsBinder is implemented by controllers that own subcommand flags.
type FlagsBinder interface {
	AddFlags(cmd *cobra.Command)
}

// AddPersistentFlags adds the flags shared by every subcommand.
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("file", "f", "",
		"Components config file (default: ./"+DefaultConfigFile+" if present)")
	cmd.PersistentFlags().String("destination-file", "",
		"Write the config with the new versions here instead of in place")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without writing any file")
	cmd.PersistentFlags().Bool("print", false,
		"Print the resulting config to stdout at the end")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
}

// readUpdateOptions collects the persistent flags.
func readUpdateOptions(cmd *cobra.Command) (string, entities.UpdateOptions) {
	file, _ := cmd.Flags().GetString("file")
	destination, _ := cmd.Flags().GetString("destination-file")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	printConfig, _ := cmd.Flags().GetBool("print")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return resolveConfigFile(file), entities.UpdateOptions{
		DryRun:          dryRun,
		Verbose:         verbose,
		PrintConfig:     printConfig,
		DestinationFile: destination,
	}
}

// resolveConfigFile returns the absolute config path, or an empty string
// when no file was given and there is no default file.
func resolveConfigFile(file string) string {
	if file == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return ""
		}
		file = DefaultConfigFile
	}
	if absolute, err := filepath.Abs(file); err == nil {
		return absolute
	}
	return file
}
