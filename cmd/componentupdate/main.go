package main

import (
	"errors"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/componentupdate/internal"
	"github.com/rios0rios0/componentupdate/internal/infrastructure/controllers"
)

const (
	exitUsage    = 1
	exitPipeline = 2
)

// pipelineError marks failures of a subcommand, as opposed to argument
// errors reported by Cobra.
type pipelineError struct {
	err error
}

func (e *pipelineError) Error() string { return e.err.Error() }
func (e *pipelineError) Unwrap() error { return e.err }

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "componentupdate",
		Short: "Keep pinned component versions up to date",
		Long: `Track the versions of container images and Python packages pinned in
your files, check the upstream registries for newer releases and update
the files in place.

Usage:
  componentupdate check                Check declared components for new versions
  componentupdate update --git-commit  Update, test and commit every component`,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			if verbose, _ := command.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(logger.DebugLevel)
			}
		},
	}

	controllers.AddPersistentFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.NoArgs,
			RunE: func(command *cobra.Command, arguments []string) error {
				if err := ctrl.Execute(command, arguments); err != nil {
					command.SilenceUsage = true
					return &pipelineError{err: err}
				}
				return nil
			},
		}

		// Add controller-specific flags
		if binder, ok := ctrl.(controllers.FlagsBinder); ok {
			binder.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cobraRoot := buildRootCommand()

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	err := cobraRoot.Execute()
	if closeErr := appContext.Close(); closeErr != nil {
		logger.Warnf("Failed to close the version cache: %s", closeErr)
	}
	if err == nil {
		return
	}

	var pipeErr *pipelineError
	if errors.As(err, &pipeErr) {
		logger.Errorf("Error executing 'componentupdate': %s", pipeErr.err)
		os.Exit(exitPipeline)
	}
	logger.Errorf("Error executing 'componentupdate': %s", err)
	os.Exit(exitUsage)
}
