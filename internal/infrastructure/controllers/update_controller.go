package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/componentupdate/internal/domain/commands"
	"github.com/rios0rios0/componentupdate/internal/domain/entities"
)

// UpdateController handles the "update" subcommand.
type UpdateController struct {
	command commands.Update
}

// NewUpdateController creates a new UpdateController.
func NewUpdateController(command commands.Update) *UpdateController {
	return &UpdateController{command: command}
}

// GetBind returns the Cobra command metadata for the update controller.
func (it *UpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "update",
		Short: "Update files with the new versions, run tests and commit",
		Long: `Check every component, then for each one with a newer version:
replace the version in its files, run the test command, save the config
and optionally commit the change to Git.

The first failure stops the run and the status of every component is
printed.`,
	}
}

// AddFlags adds the update-specific flags to the given Cobra command.
func (it *UpdateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("test-command", "", `Command verifying each update, e.g. "make test"`)
	cmd.Flags().String("test-dir", "", "Directory the test command runs in (default: project dir)")
	cmd.Flags().Bool("git-commit", false, "Commit every updated component")
	cmd.Flags().String("project-dir", "",
		"Root directory for the paths in the config file (default: config file dir)")
}

// Execute runs the update pipeline and prints its status.
func (it *UpdateController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	configFile, opts := readUpdateOptions(cmd)
	testCommand, _ := cmd.Flags().GetString("test-command")
	testDir, _ := cmd.Flags().GetString("test-dir")
	gitCommit, _ := cmd.Flags().GetBool("git-commit")
	projectDir, _ := cmd.Flags().GetString("project-dir")

	output, err := it.command.Execute(ctx, commands.UpdateCommandOptions{
		UpdateOptions: opts,
		ConfigFile:    configFile,
		TestCommand:   testCommand,
		TestDir:       testDir,
		GitCommit:     gitCommit,
		ProjectDir:    projectDir,
	})
	if err != nil {
		logger.Error("Something went wrong!!!")
		if output != nil {
			printStatus(out, output.Config)
		}
		return err
	}

	logger.Infof("[update] %d files updated", output.FilesUpdated)
	if opts.Verbose {
		printStatus(out, output.Config)
	}
	if output.Rendered != nil {
		fmt.Fprint(out, string(output.Rendered))
	}
	return nil
}
