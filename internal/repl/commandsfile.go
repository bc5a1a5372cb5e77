package repl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// CommandSpec is one entry of the custom commands file. Exactly one of
// Alias or Expr is set.
type CommandSpec struct {
	Name  string `yaml:"name"`
	Alias string `yaml:"alias,omitempty"`
	Expr  string `yaml:"expr,omitempty"`
}

type commandsFile struct {
	Commands []CommandSpec `yaml:"commands"`
}

// ParseCommands decodes a commands file.
func ParseCommands(data []byte) ([]CommandSpec, error) {
	var f commandsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("repl: parse commands: %w", err)
	}
	return f.Commands, nil
}

// LoadCommandsFile registers every valid entry of the YAML file at path.
// A missing file is not an error. Entries that fail to register are
// returned as skipped errors; the others stay registered.
func LoadCommandsFile(reg *Registry, path string) (loaded int, skipped []error, err error) {
	if path == "" {
		return 0, nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil, nil
		}
		return 0, nil, fmt.Errorf("repl: read commands file: %w", err)
	}
	specs, err := ParseCommands(data)
	if err != nil {
		return 0, nil, err
	}
	for _, spec := range specs {
		if err := spec.apply(reg); err != nil {
			skipped = append(skipped, fmt.Errorf("command %q: %w", spec.Name, err))
			continue
		}
		loaded++
	}
	return loaded, skipped, nil
}

func (s CommandSpec) apply(reg *Registry) error {
	switch {
	case s.Alias != "" && s.Expr != "":
		return errors.New("alias and expr are mutually exclusive")
	case s.Alias != "":
		return reg.RegisterAlias(s.Name, s.Alias)
	case s.Expr != "":
		return reg.RegisterExpression(s.Name, s.Expr)
	default:
		return errors.New("missing alias or expr")
	}
}
