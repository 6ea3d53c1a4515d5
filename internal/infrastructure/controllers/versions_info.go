package controllers

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
)

// printVersionsInfo writes one line per available update with the next
// version highlighted.
func printVersionsInfo(out io.Writer, infos []entities.VersionInfo) {
	green := color.New(color.FgGreen).SprintFunc()
	for _, info := range infos {
		line := fmt.Sprintf("%s - current: %s next: %s", info.Name, info.Current, green(info.Next))
		if info.UpdateType != entities.UpdateTypeUnknown {
			line += fmt.Sprintf(" (%s)", info.UpdateType)
		}
		fmt.Fprintln(out, line)
	}
}

func printStatus(out io.Writer, cfg *entities.Config) {
	fmt.Fprintln(out, color.New(color.Bold).Sprint("Config status:"))
	fmt.Fprintln(out, cfg.StatusReport())
}
