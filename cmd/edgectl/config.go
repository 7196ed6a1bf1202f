// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"edgectl/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect tool configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	cmd.Println(TitleStyle.Render("Configuration"))
	cmd.Println(SubtitleStyle.Render("file: ") + CmdStyle.Render(path))
	cmd.Println()
	cmd.Println(fmt.Sprintf("  default_repository: %s", settings.DefaultRepository))
	cmd.Println(fmt.Sprintf("  platform:           %s", settings.Platform))
	cmd.Println(fmt.Sprintf("  verbose:            %t", settings.Verbose))
	cmd.Println(fmt.Sprintf("  accessible:         %t", settings.Accessible))

	if len(settings.Templates) == 0 {
		return nil
	}
	cmd.Println("  templates:")
	for _, t := range settings.Templates {
		cmd.Println(fmt.Sprintf("    - %s: %s", t.Name, t.Command))
	}
	return nil
}
