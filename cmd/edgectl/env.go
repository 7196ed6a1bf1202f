// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"edgectl/internal/solution"

	"github.com/spf13/cobra"
)

var envSolutionDir string

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Inspect the solution's env file",
}

var envCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report registry credential variables the env file does not resolve",
	Long: `Scan the deployment templates for registry credentials whose $VAR
references the solution's env file leaves unresolved. Unresolved variables
mean a deployment built from the template would carry literal placeholders
instead of secrets.`,
	Args: cobra.NoArgs,
	RunE: runEnvCheck,
}

func init() {
	envCheckCmd.Flags().StringVarP(&envSolutionDir, "solution", "s", ".", "solution folder")
	envCmd.AddCommand(envCheckCmd)
}

func runEnvCheck(cmd *cobra.Command, _ []string) error {
	sol, err := solution.Open(envSolutionDir)
	if err != nil {
		return err
	}

	reports, err := solution.CheckEnv(sol)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		cmd.Println(SuccessStyle.Render("All registry credential variables resolve."))
		return nil
	}

	for _, report := range reports {
		cmd.Println(WarningStyle.Render("Unresolved in ") + CmdStyle.Render(report.File) + ":")
		for _, name := range report.Unresolved {
			cmd.Println(SubtitleStyle.Render("  " + name))
		}
	}
	cmd.Println(SubtitleStyle.Render("Add values for these variables to ") + CmdStyle.Render(sol.EnvPath()))
	return nil
}
