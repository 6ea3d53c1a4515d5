package entities

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds the number of concurrent remote version checks.
const DefaultWorkers = 4

// Config owns the ordered components of one invocation and the audit trail
// of their update pipeline.
type Config struct {
	RunID       string
	ConfigFile  string
	ProjectDir  string
	TestCommand []string
	TestDir     string
	Commit      bool

	Components []*Component
	Status     *StatusLog
}

// CheckResult is the outcome of checking a single component.
type CheckResult struct {
	Name  string
	Newer bool
}

// VersionInfo describes an available update.
type VersionInfo struct {
	Name       string
	Current    string
	Next       string
	UpdateType UpdateType
}

// NewConfig creates an empty config. The project directory defaults to the
// directory holding the config file.
func NewConfig(configFile string) *Config {
	cfg := &Config{
		RunID:      uuid.NewString(),
		ConfigFile: configFile,
		Status:     NewStatusLog(),
	}
	if configFile != "" {
		cfg.ProjectDir = filepath.Dir(configFile)
	}
	return cfg
}

// Add appends a component and returns its index.
func (c *Config) Add(component *Component) int {
	c.Components = append(c.Components, component)
	return len(c.Components) - 1
}

// Check runs Component.Check for every component, at most workers at a
// time. Each goroutine only touches its own component.
func (c *Config) Check(ctx context.Context, fetcher VersionFetcher, workers int) ([]CheckResult, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]CheckResult, len(c.Components))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, component := range c.Components {
		group.Go(func() error {
			newer, err := component.Check(groupCtx, fetcher)
			if err != nil {
				return fmt.Errorf("check of %s failed: %w", component.Name, err)
			}
			results[i] = CheckResult{Name: component.Name, Newer: newer}
			logger.Debugf(
				"[check] %s: current %s, next %s", component.Name,
				component.CurrentVersionTag, component.NextVersionTag,
			)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CountComponentsNeedingUpdate refreshes every component and counts those
// with a newer version available.
func (c *Config) CountComponentsNeedingUpdate(ctx context.Context, fetcher VersionFetcher, workers int) (int, error) {
	results, err := c.Check(ctx, fetcher, workers)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, result := range results {
		if result.Newer {
			count++
		}
	}
	return count, nil
}

// RecordStatus appends a pipeline state for the component to the audit log.
func (c *Config) RecordStatus(component *Component, state PipelineState) StatusEntry {
	var message string
	switch state {
	case StateUpdateStarted, StateUpdateSkipped:
		message = fmt.Sprintf("%s for %s in version %s", state, component.Name, component.CurrentVersionTag)
	case StateUpdateDone:
		message = fmt.Sprintf("%s for %s in version %s", state, component.Name, component.NextVersionTag)
	default:
		message = string(state)
	}
	logger.WithField("run", c.RunID).Debugf("[update] %s", message)
	return c.Status.Append(component.Name, state, message)
}

// VersionsInfo lists the components with a newer version, sorted by name.
func (c *Config) VersionsInfo() []VersionInfo {
	var infos []VersionInfo
	for _, component := range c.Components {
		if !component.NewerVersionExists() {
			continue
		}
		infos = append(infos, VersionInfo{
			Name:       component.Name,
			Current:    component.CurrentVersionTag,
			Next:       component.NextVersionTag,
			UpdateType: ClassifyUpdate(component.CurrentVersionTag, component.NextVersionTag),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Declarations returns the persistable records in component order.
func (c *Config) Declarations() []NamedDeclaration {
	declarations := make([]NamedDeclaration, 0, len(c.Components))
	for _, component := range c.Components {
		declarations = append(declarations, NamedDeclaration{
			Name:        component.Name,
			Declaration: component.Declaration(),
		})
	}
	return declarations
}

// StatusReport renders the audit trail with the run identifier.
func (c *Config) StatusReport() string {
	return fmt.Sprintf("run %s\n%s", c.RunID, c.Status.String())
}
