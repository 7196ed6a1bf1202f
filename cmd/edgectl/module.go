// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"edgectl/internal/solution"

	"github.com/spf13/cobra"
)

var moduleSolutionDir string

var moduleCmd = &cobra.Command{
	Use:   "module",
	Short: "Manage modules inside a solution",
}

var moduleAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a module to an existing solution",
	Long: `Scaffold a new module inside the solution, register it in both
deployment templates, reconcile registry credentials against the env file,
and merge a debugger configuration for the module's language.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return finishWorkflow(runModuleAdd(cmd, args))
	},
}

func init() {
	moduleAddCmd.Flags().StringVarP(&moduleSolutionDir, "solution", "s", ".", "solution folder")
	moduleCmd.AddCommand(moduleAddCmd)
}

func runModuleAdd(cmd *cobra.Command, args []string) error {
	sol, err := solution.Open(moduleSolutionDir)
	if err != nil {
		return err
	}

	p := newPrompter()
	req, err := pickTemplate(p)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		req.Name = args[0]
	} else {
		req.Name, err = promptModuleName(p)
		if err != nil {
			return err
		}
	}

	result, err := newWorkflow(p).AddModule(cmd.Context(), sol, req, false)
	if err != nil {
		return err
	}
	reportResult(cmd, sol, result)
	return nil
}
