// SPDX-License-Identifier: MPL-2.0

// Package solution implements the end-to-end workflows over an edge module
// development solution: creating the folder skeleton, adding modules, and
// checking the env file for unresolved credential references.
package solution

import (
	"os"
	"path/filepath"

	"edgectl/internal/issue"
)

// Well-known file names inside a solution folder.
const (
	DeploymentTemplate      = "deployment.template.json"
	DeploymentDebugTemplate = "deployment.debug.template.json"
	EnvFileName             = ".env"
	ModulesDirName          = "modules"
	LaunchFileName          = "launch.json"
	VSCodeDirName           = ".vscode"
)

// Solution is an opened solution folder.
type Solution struct {
	Dir string
}

// Open validates that dir contains a solution and returns it. The production
// deployment template is the marker file.
func Open(dir string) (*Solution, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(abs, DeploymentTemplate)); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("open solution").
			WithResource(abs).
			WithSuggestion("Run 'edgectl solution new' to create a solution").
			WithSuggestion("Or pass the solution folder with --solution").
			Wrap(err).
			Build()
	}
	return &Solution{Dir: abs}, nil
}

// TemplatePath is the production deployment template file.
func (s *Solution) TemplatePath() string {
	return filepath.Join(s.Dir, DeploymentTemplate)
}

// DebugTemplatePath is the debug-variant deployment template file. The
// second return reports whether the file exists.
func (s *Solution) DebugTemplatePath() (string, bool) {
	path := filepath.Join(s.Dir, DeploymentDebugTemplate)
	_, err := os.Stat(path)
	return path, err == nil
}

// EnvPath is the solution's environment file.
func (s *Solution) EnvPath() string {
	return filepath.Join(s.Dir, EnvFileName)
}

// ModulesPath is the directory holding scaffolded module sources.
func (s *Solution) ModulesPath() string {
	return filepath.Join(s.Dir, ModulesDirName)
}

// LaunchPath is the workspace's debugger launch configuration file.
func (s *Solution) LaunchPath() string {
	return filepath.Join(s.Dir, VSCodeDirName, LaunchFileName)
}
