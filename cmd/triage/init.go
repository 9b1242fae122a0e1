package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/triage/internal/config"
	"github.com/ShayCichocki/triage/internal/loader"
)

var (
	initForce     bool
	initWithTasks bool
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Set up a directory for triage",
	Long: `Prepare a directory for use with triage.

This command:
  - Creates the .triage directory for debug logs
  - Writes a .triage.yaml project config template
  - Adds .triage/ to an existing .gitignore
  - Optionally writes a tasks.yaml starter list (--with-tasks)

The directory argument is optional and defaults to the current directory.

Examples:
  triage init                 # Initialize current directory
  triage init --with-tasks    # Also write tasks.yaml from the sample list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	initCmd.Flags().BoolVar(&initWithTasks, "with-tasks", false, "Write a tasks.yaml starter list")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}

	return initProject(cmd.OutOrStdout(), absPath, initForce, initWithTasks)
}

// initProject lays out the triage files under dir.
func initProject(out io.Writer, dir string, force, withTasks bool) error {
	fmt.Fprintf(out, "Initializing triage in %s...\n\n", dir)

	if err := os.MkdirAll(filepath.Join(dir, ".triage", "logs"), 0755); err != nil {
		return fmt.Errorf("creating .triage directory: %w", err)
	}
	printStatus(out, "✓", "Created .triage directory structure", color.FgGreen)

	created, err := writeIfAbsent(filepath.Join(dir, ".triage.yaml"), []byte(projectConfigTemplate(withTasks)), force)
	if err != nil {
		return fmt.Errorf("creating project config: %w", err)
	}
	if created {
		printStatus(out, "✓", "Created .triage.yaml template", color.FgGreen)
	} else {
		printStatus(out, "•", ".triage.yaml already exists (use --force to overwrite)", color.FgYellow)
	}

	if withTasks {
		data, err := yaml.Marshal(map[string][]string{"tasks": loader.SampleTasks()})
		if err != nil {
			return fmt.Errorf("encoding tasks: %w", err)
		}
		created, err := writeIfAbsent(filepath.Join(dir, "tasks.yaml"), data, force)
		if err != nil {
			return fmt.Errorf("creating tasks.yaml: %w", err)
		}
		if created {
			printStatus(out, "✓", "Created tasks.yaml with sample tasks", color.FgGreen)
		}
	}

	updated, err := updateGitignore(dir)
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	if updated {
		printStatus(out, "✓", "Updated .gitignore with triage entries", color.FgGreen)
	}

	if config.GetAPIKeySource(nil) == config.KeySourceNone {
		printStatus(out, "⚠", "ANTHROPIC_API_KEY not set (only needed for --suggest anthropic)", color.FgYellow)
	} else {
		printStatus(out, "✓", "ANTHROPIC_API_KEY is set", color.FgGreen)
	}

	fmt.Fprintf(out, "\n%s triage initialization complete!\n", color.GreenString("✓"))
	return nil
}

// writeIfAbsent writes data to path unless it exists and force is false.
func writeIfAbsent(path string, data []byte, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, err
	}
	return true, nil
}

// updateGitignore adds triage entries to an existing .gitignore.
func updateGitignore(dir string) (bool, error) {
	gitignorePath := filepath.Join(dir, ".gitignore")

	data, err := os.ReadFile(gitignorePath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	existing := string(data)

	const entry = ".triage/"
	for _, line := range strings.Split(existing, "\n") {
		if strings.TrimSpace(line) == entry {
			return false, nil
		}
	}

	var b strings.Builder
	b.WriteString(existing)
	if len(existing) > 0 && !strings.HasSuffix(existing, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n# triage\n" + entry + "\n")

	return true, os.WriteFile(gitignorePath, []byte(b.String()), 0644)
}

func projectConfigTemplate(withTasks bool) string {
	tasks := `# tasks:
#   source: file
#   path: tasks.yaml`
	if withTasks {
		tasks = `tasks:
  source: file
  path: tasks.yaml`
	}

	return `# triage project configuration
# This file overrides defaults from ~/.config/triage/config.yaml

# user:
#   name: Ada

` + tasks + `

# suggest:
#   mode: local        # local, anthropic or bedrock
#   timeout: 30s

# prompt:
#   timeout: 0s        # 0 waits forever
#   tui: false

# log:
#   debug: false
`
}
