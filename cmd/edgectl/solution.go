// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"edgectl/internal/prompt"
	"edgectl/internal/solution"

	"github.com/spf13/cobra"
)

var solutionCmd = &cobra.Command{
	Use:   "solution",
	Short: "Manage edge module solutions",
}

var solutionNewCmd = &cobra.Command{
	Use:   "new [dir]",
	Short: "Create a new edge solution",
	Long: `Create a new edge solution folder: production and debug deployment
templates seeded with the simulated temperature sensor, an env file for
registry secrets, and a first module scaffolded from the template of your
choice.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return finishWorkflow(runSolutionNew(cmd, args))
	},
}

func init() {
	solutionCmd.AddCommand(solutionNewCmd)
}

func runSolutionNew(cmd *cobra.Command, args []string) error {
	p := newPrompter()

	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		var err error
		dir, err = p.Input(prompt.InputOptions{
			Title:   "Solution folder",
			Default: "edge-solution",
			Validate: func(s string) error {
				if s == "" {
					return fmt.Errorf("folder cannot be empty")
				}
				return nil
			},
		})
		if err != nil {
			return err
		}
	}

	req, err := pickTemplate(p)
	if err != nil {
		return err
	}
	req.Name, err = promptModuleName(p)
	if err != nil {
		return err
	}

	sol, err := solution.Create(dir)
	if err != nil {
		return err
	}
	cmd.Println(SuccessStyle.Render("Created solution at ") + CmdStyle.Render(sol.Dir))

	result, err := newWorkflow(p).AddModule(cmd.Context(), sol, req, true)
	if err != nil {
		return err
	}
	reportResult(cmd, sol, result)
	return nil
}

// reportResult prints what the add-module workflow changed.
func reportResult(cmd *cobra.Command, sol *solution.Solution, result *solution.Result) {
	cmd.Println(SuccessStyle.Render("Added module ") + CmdStyle.Render(result.Descriptor.Name))
	if result.LaunchUpdated {
		cmd.Println(SubtitleStyle.Render("  debugger configuration merged into " + sol.LaunchPath()))
	}
	if len(result.VarsAllocated) > 0 && !result.AutoFilled {
		cmd.Println(WarningStyle.Render("  fill in registry credentials in ") + CmdStyle.Render(sol.EnvPath()))
		for _, name := range result.VarsAllocated {
			cmd.Println(SubtitleStyle.Render("    " + name))
		}
	}
}
