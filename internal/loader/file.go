package loader

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// FileSource reads tasks from disk.
//
// Files ending in .yaml or .yml may hold either a bare list or a mapping with
// a "tasks" key:
//
//	tasks:
//	  - Resolve client escalation
//	  - Review PR #23
//
// Any other file is read as plain text, one task per line. Lines starting
// with '#' are comments.
type FileSource struct {
	Path string
}

// taskFile is the mapping form of a YAML task file.
type taskFile struct {
	Tasks []string `yaml:"tasks"`
}

// Load implements Source.
func (s FileSource) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		tasks, err := parseYAMLTasks(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.Path, err)
		}
		return Normalize(tasks), nil
	default:
		return Normalize(parseTextTasks(data)), nil
	}
}

func parseYAMLTasks(data []byte) ([]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var tasks []string
		if err := root.Decode(&tasks); err != nil {
			return nil, err
		}
		return tasks, nil
	case yaml.MappingNode:
		var file taskFile
		if err := root.Decode(&file); err != nil {
			return nil, err
		}
		return file.Tasks, nil
	default:
		return nil, fmt.Errorf("expected a list of tasks or a 'tasks' key")
	}
}

func parseTextTasks(data []byte) []string {
	var tasks []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tasks = append(tasks, line)
	}
	return tasks
}
