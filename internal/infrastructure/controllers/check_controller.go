package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/componentupdate/internal/domain/commands"
	"github.com/rios0rios0/componentupdate/internal/domain/entities"
)

// CheckController handles the "check" subcommand.
type CheckController struct {
	command    commands.Check
	clearCache commands.ClearCache
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Check, clearCache commands.ClearCache) *CheckController {
	return &CheckController{command: command, clearCache: clearCache}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check",
		Short: "Check if new versions of the components are available",
		Long: `Fetch the available versions of every declared component, pick the
next version allowed by its filter and exclusions, and save it to the
config file.

A single component can be checked without a config file:
  componentupdate check --type docker-image --component nginx --version-tag 1.25.3`,
	}
}

// AddFlags adds the check-specific flags to the given Cobra command.
func (it *CheckController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "",
		fmt.Sprintf("Component type of an ad-hoc component %v", entities.ComponentKinds()))
	cmd.Flags().String("component", "", "Name of an ad-hoc component to check")
	cmd.Flags().String("repo", "", "Docker repository of the ad-hoc component (default: library)")
	cmd.Flags().String("version-tag", "", "Current version tag of the ad-hoc component, e.g. v2.3.0")
	cmd.Flags().Bool("clear-cache", false, "Clear all cached version listings and exit")
}

// Execute runs the check and prints the summary.
func (it *CheckController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	if clearRequested, _ := cmd.Flags().GetBool("clear-cache"); clearRequested {
		return it.clearCache.Execute(ctx)
	}

	configFile, opts := readUpdateOptions(cmd)
	checkOpts := commands.CheckOptions{UpdateOptions: opts, ConfigFile: configFile}
	if component, _ := cmd.Flags().GetString("component"); component != "" {
		kind, _ := cmd.Flags().GetString("type")
		repo, _ := cmd.Flags().GetString("repo")
		versionTag, _ := cmd.Flags().GetString("version-tag")
		checkOpts.Adhoc = &commands.AdhocComponent{
			Kind:              kind,
			Name:              component,
			Repository:        repo,
			CurrentVersionTag: versionTag,
		}
	}

	output, err := it.command.Execute(ctx, checkOpts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d components to check\n", output.Checked)
	fmt.Fprintf(out, "%d components to update\n", output.ToUpdate)
	if opts.Verbose {
		printVersionsInfo(out, output.Config.VersionsInfo())
	}
	if output.Rendered != nil {
		fmt.Fprint(out, string(output.Rendered))
	}
	return nil
}
