package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/componentupdate/internal/domain/commands"
	"github.com/rios0rios0/componentupdate/internal/domain/entities"
)

// ClearCacheController handles the "clear-cache" subcommand.
type ClearCacheController struct {
	command commands.ClearCache
}

// NewClearCacheController creates a new ClearCacheController.
func NewClearCacheController(command commands.ClearCache) *ClearCacheController {
	return &ClearCacheController{command: command}
}

// GetBind returns the Cobra command metadata for the clear-cache controller.
func (it *ClearCacheController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "clear-cache",
		Short: "Drop all cached version listings",
	}
}

// Execute clears the version cache.
func (it *ClearCacheController) Execute(_ *cobra.Command, _ []string) error {
	return it.command.Execute(context.Background())
}
