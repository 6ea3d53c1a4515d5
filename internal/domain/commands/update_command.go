package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/componentupdate/internal/infrastructure/repositories"
)

const changelogFile = "CHANGELOG.md"

// Update is the interface for the update command.
type Update interface {
	Execute(ctx context.Context, opts UpdateCommandOptions) (*UpdateOutput, error)
}

// UpdateCommandOptions holds runtime options for the update command.
type UpdateCommandOptions struct {
	entities.UpdateOptions

	ConfigFile  string
	TestCommand string // split on whitespace
	TestDir     string
	GitCommit   bool
	ProjectDir  string // overrides the config file directory
}

// UpdateOutput is what the update command reports back to the controller.
// Config is set whenever the config file could be loaded, so the status
// log is available even when the pipeline failed.
type UpdateOutput struct {
	Config       *entities.Config
	ToUpdate     int
	FilesUpdated int
	Rendered     []byte
}

// UpdateCommand drives every component with a newer version through the
// update pipeline: rewrite files, verify, save, commit.
type UpdateCommand struct {
	stores     *infraRepos.StoreRegistry
	versions   *infraRepos.VersionRegistry
	settings   *entities.Settings
	testRunner repositories.TestRunnerRepository
	vcs        repositories.VCSRepository
}

// NewUpdateCommand creates a new UpdateCommand.
func NewUpdateCommand(
	stores *infraRepos.StoreRegistry,
	versions *infraRepos.VersionRegistry,
	settings *entities.Settings,
	testRunner repositories.TestRunnerRepository,
	vcs repositories.VCSRepository,
) *UpdateCommand {
	return &UpdateCommand{
		stores:     stores,
		versions:   versions,
		settings:   settings,
		testRunner: testRunner,
		vcs:        vcs,
	}
}

// Execute loads the config, checks every component, saves the result and
// runs the update pipeline.
func (it *UpdateCommand) Execute(ctx context.Context, opts UpdateCommandOptions) (*UpdateOutput, error) {
	cfg, err := loadConfig(it.stores, opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	cfg.TestCommand = strings.Fields(opts.TestCommand)
	cfg.TestDir = opts.TestDir
	cfg.Commit = opts.GitCommit
	if opts.ProjectDir != "" {
		cfg.ProjectDir = opts.ProjectDir
	}
	if cfg.ProjectDir == "" {
		cfg.ProjectDir = "."
	}

	output := &UpdateOutput{Config: cfg}
	toUpdate, err := cfg.CountComponentsNeedingUpdate(ctx, it.versions, it.settings.Workers)
	if err != nil {
		return output, err
	}
	output.ToUpdate = toUpdate
	logger.Infof("[update] %d of %d components have a newer version", toUpdate, len(cfg.Components))

	if _, saveErr := saveConfig(it.stores, cfg, opts.UpdateOptions); saveErr != nil {
		return output, fmt.Errorf("failed to save config: %w", saveErr)
	}

	files, err := it.UpdateAll(ctx, cfg, opts.UpdateOptions)
	output.FilesUpdated = files
	if err != nil {
		return output, err
	}

	if opts.PrintConfig {
		rendered, renderErr := renderConfig(it.stores, cfg)
		if renderErr != nil {
			return output, renderErr
		}
		output.Rendered = rendered
	}
	return output, nil
}

// UpdateAll runs the pipeline for every component in declaration order and
// returns the number of files processed. Components without a newer version
// or without tracked files are skipped. The first failure aborts the run;
// the states recorded so far stay in cfg.Status.
func (it *UpdateCommand) UpdateAll(ctx context.Context, cfg *entities.Config, opts entities.UpdateOptions) (int, error) {
	projectFS := osfs.New(cfg.ProjectDir)
	total := 0

	for _, component := range cfg.Components {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		if !component.NewerVersionExists() {
			cfg.RecordStatus(component, entities.StateUpdateSkipped)
			continue
		}
		if len(component.Files) == 0 {
			logger.Warnf(
				"[update] %s has a newer version %s but no files to update, skipping",
				component.Name, component.NextVersionTag,
			)
			cfg.RecordStatus(component, entities.StateUpdateSkipped)
			continue
		}

		files, err := it.updateComponent(ctx, cfg, component, projectFS, opts)
		total += files
		if err != nil {
			return total, fmt.Errorf("update of %s failed: %w", component.Name, err)
		}
	}
	return total, nil
}

func (it *UpdateCommand) updateComponent(
	ctx context.Context,
	cfg *entities.Config,
	component *entities.Component,
	projectFS billy.Filesystem,
	opts entities.UpdateOptions,
) (int, error) {
	fromTag := component.CurrentVersionTag
	toTag := component.NextVersionTag
	cfg.RecordStatus(component, entities.StateUpdateStarted)

	files, err := component.RewriteFiles(projectFS, opts.DryRun)
	if err != nil {
		return 0, err
	}
	cfg.RecordStatus(component, entities.StateFilesUpdated)

	if len(cfg.TestCommand) > 0 {
		testDir := cfg.TestDir
		if testDir == "" {
			testDir = cfg.ProjectDir
		}
		if runErr := it.testRunner.Run(ctx, cfg.TestCommand, testDir); runErr != nil {
			return files, runErr
		}
		cfg.RecordStatus(component, entities.StateTestRun)
	}

	if !opts.DryRun {
		component.Advance()
	}
	savedPath, err := saveConfig(it.stores, cfg, opts)
	if err != nil {
		return files, fmt.Errorf("failed to save config: %w", err)
	}
	cfg.RecordStatus(component, entities.StateConfigSaved)

	if cfg.Commit {
		commitErr := it.commitChanges(ctx, cfg, component, projectFS, savedPath, fromTag, toTag, opts.DryRun)
		if commitErr != nil {
			return files, commitErr
		}
		cfg.RecordStatus(component, entities.StateCommittedChanges)
	}

	cfg.RecordStatus(component, entities.StateUpdateDone)
	logger.Infof("[update] %s updated from %s to %s", component.Name, fromTag, toTag)
	return files, nil
}

// commitChanges verifies that every tracked file was modified, adds a
// changelog entry when the project keeps one, and commits the result.
func (it *UpdateCommand) commitChanges(
	ctx context.Context,
	cfg *entities.Config,
	component *entities.Component,
	projectFS billy.Filesystem,
	savedPath, fromTag, toTag string,
	dryRun bool,
) error {
	message := fmt.Sprintf("%s updated from: %s to: %s", component.Name, fromTag, toTag)
	if dryRun {
		logger.Infof("[DRY RUN] Would commit %q", message)
		return nil
	}

	changed, err := it.vcs.DiffNames(ctx, cfg.ProjectDir)
	if err != nil {
		return err
	}
	for _, file := range component.Files {
		if !changed[filepath.ToSlash(filepath.Clean(file))] {
			return fmt.Errorf(
				"%w: %s is not among the changed files of the working tree",
				entities.ErrExternalProcess, file,
			)
		}
	}

	toStage := slices.Clone(component.Files)
	if savedPath != "" {
		relative, relErr := relativeTo(cfg.ProjectDir, savedPath)
		if relErr != nil {
			return relErr
		}
		toStage = append(toStage, relative)
	}
	updatedChangelog, err := updateChangelog(projectFS, entities.ChangelogEntry(component, fromTag, toTag))
	if err != nil {
		return err
	}
	if updatedChangelog {
		toStage = append(toStage, changelogFile)
	}

	for _, path := range toStage {
		if addErr := it.vcs.Add(ctx, cfg.ProjectDir, path); addErr != nil {
			return addErr
		}
	}
	return it.vcs.Commit(ctx, cfg.ProjectDir, message)
}

// updateChangelog inserts entry into CHANGELOG.md at the project root. It
// reports false when there is no changelog or no Unreleased section.
func updateChangelog(projectFS billy.Filesystem, entry string) (bool, error) {
	content, err := util.ReadFile(projectFS, changelogFile)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", changelogFile, err)
	}

	updated, ok := entities.InsertChangelogEntries(string(content), entry)
	if !ok {
		logger.Debugf("[update] %s has no Unreleased section, leaving it alone", changelogFile)
		return false, nil
	}
	if writeErr := util.WriteFile(projectFS, changelogFile, []byte(updated), 0o644); writeErr != nil {
		return false, fmt.Errorf("failed to write %s: %w", changelogFile, writeErr)
	}
	return true, nil
}

func relativeTo(dir, path string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	relative, err := filepath.Rel(absDir, absPath)
	if err != nil || strings.HasPrefix(relative, "..") {
		return "", fmt.Errorf("%w: %s is outside of the project directory %s", entities.ErrConfiguration, path, dir)
	}
	return filepath.ToSlash(relative), nil
}
