package repl

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/cristianoliveira/maprepl/internal/backend"
	"github.com/cristianoliveira/maprepl/internal/search"
)

// User-facing messages of the built-in commands.
const (
	msgFileNotFound    = "File not found"
	msgNotLoaded       = "CSV file not loaded"
	msgNoData          = "No data to display"
	msgLoadUsage       = "Invalid usage of 'load' command. Usage: load <path>"
	msgViewUsage       = "Invalid usage of 'view' command. Usage: view"
	msgSearchUsage     = "Invalid search command. Usage: search <hasHeaders> <value> <columnId>"
	msgModeUsage       = "Invalid usage of 'mode' command. Usage: mode <brief|verbose>"
	msgRegisterUsage   = "Invalid usage of 'register' command. Usage: register <commandName> <function>"
	msgBroadbandUsage  = "Invalid broadband retrieval command. Usage: broadband <state> <county>"
	msgBroadbandFailed = "Failed to fetch data from the backend"
	msgHeadersRequired = "Column names require headers"
)

// BroadbandClient resolves a county's broadband access percentage.
type BroadbandClient interface {
	Broadband(ctx context.Context, state, county string) (string, error)
}

// Config wires the built-in commands to their collaborators.
type Config struct {
	// DataDir is the root for relative load paths.
	DataDir string
	// HasHeaders is the load-time header flag used by view.
	HasHeaders bool
	// Matcher compares cells in search. Defaults to exact matching.
	Matcher search.Provider
	// Broadband backs the broadband command. When nil the command is not registered.
	Broadband BroadbandClient
}

type builtins struct {
	session  *Session
	registry *Registry
	cfg      Config
}

// RegisterBuiltins installs load, view, search, mode, register, help and,
// when a client is configured, broadband.
func RegisterBuiltins(reg *Registry, session *Session, cfg Config) error {
	if cfg.Matcher == nil {
		cfg.Matcher = search.NewExactProvider()
	}
	b := &builtins{session: session, registry: reg, cfg: cfg}
	handlers := map[string]HandlerFunc{
		"load":     b.load,
		"view":     b.view,
		"search":   b.search,
		"mode":     b.mode,
		"register": b.register,
		"help":     b.help,
	}
	if cfg.Broadband != nil {
		handlers["broadband"] = b.broadband
	}
	for name, h := range handlers {
		if err := reg.Register(name, h); err != nil {
			return err
		}
	}
	return nil
}

func (b *builtins) load(_ context.Context, args []string) Result {
	if len(args) != 1 {
		return Text(msgLoadUsage)
	}
	path := args[0]
	rows, err := readCSV(resolvePath(b.cfg.DataDir, path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return Text(msgFileNotFound)
		}
		return Text(fmt.Sprintf("Invalid CSV file: %s", path))
	}
	b.session.SetDataset(&Dataset{Path: path, Rows: rows, HasHeaders: b.cfg.HasHeaders})
	return Text(fmt.Sprintf("File %s loaded successfully", path))
}

func (b *builtins) view(_ context.Context, args []string) Result {
	if len(args) != 0 {
		return Text(msgViewUsage)
	}
	data, ok := b.session.Dataset()
	if !ok {
		return Text(msgNotLoaded)
	}
	if len(data.Rows) == 0 {
		return Text(msgNoData)
	}
	return Table(data.Rows, data.HasHeaders)
}

func (b *builtins) search(_ context.Context, args []string) Result {
	if len(args) != 3 {
		return Text(msgSearchUsage)
	}
	data, ok := b.session.Dataset()
	if !ok {
		return Text(msgNotLoaded)
	}
	var hasHeaders bool
	switch strings.ToLower(args[0]) {
	case "y":
		hasHeaders = true
	case "n":
		hasHeaders = false
	default:
		return Text(msgSearchUsage)
	}
	value, column := args[1], args[2]

	view := &Dataset{Path: data.Path, Rows: data.Rows, HasHeaders: hasHeaders}
	idx, err := strconv.Atoi(column)
	if err != nil {
		if !hasHeaders {
			return Text(msgHeadersRequired)
		}
		var found bool
		if idx, found = view.ColumnIndex(column); !found {
			return Text(fmt.Sprintf("Column %s not found", column))
		}
	} else if idx < 0 || (view.Width() > 0 && idx >= view.Width()) {
		return Text(fmt.Sprintf("Column index %s out of bounds", column))
	}

	rows := data.Rows
	if hasHeaders && len(rows) > 0 {
		rows = rows[1:]
	}
	var matches [][]string
	for _, row := range rows {
		if idx < len(row) && b.cfg.Matcher.Match(row[idx], value) {
			matches = append(matches, row)
		}
	}
	if len(matches) == 0 {
		return Text(msgNoData)
	}
	return Table(matches, false)
}

func (b *builtins) mode(_ context.Context, args []string) Result {
	if len(args) != 1 {
		return Text(msgModeUsage)
	}
	m, ok := ParseMode(args[0])
	if !ok {
		return Text(fmt.Sprintf("Invalid mode: %s. Use brief or verbose", args[0]))
	}
	b.session.SetMode(m)
	return Text(fmt.Sprintf("Mode changed to %s", m))
}

func (b *builtins) register(_ context.Context, args []string) Result {
	if len(args) < 2 {
		return Text(msgRegisterUsage)
	}
	name, ref := args[0], args[1]
	if strings.HasPrefix(ref, ExprPrefix) {
		source := strings.TrimPrefix(strings.Join(args[1:], " "), ExprPrefix)
		if err := b.registry.RegisterExpression(name, source); err != nil {
			return Text(fmt.Sprintf("Invalid expression for %s: %v", name, err))
		}
		return Text(fmt.Sprintf("Command %s registered", name))
	}
	if len(args) != 2 {
		return Text(msgRegisterUsage)
	}
	if err := b.registry.RegisterAlias(name, ref); err != nil {
		switch {
		case errors.Is(err, ErrUnknownTarget):
			return Text(fmt.Sprintf("Unknown function: %s", ref))
		case errors.Is(err, ErrAliasCycle):
			return Text(fmt.Sprintf("Cannot register %s: alias would refer to itself", name))
		default:
			return Text(fmt.Sprintf("Invalid command name: %s", name))
		}
	}
	return Text(fmt.Sprintf("Command %s registered", name))
}

func (b *builtins) help(_ context.Context, _ []string) Result {
	return Text("Available commands: " + strings.Join(b.registry.Names(), ", "))
}

func (b *builtins) broadband(ctx context.Context, args []string) Result {
	if len(args) != 2 {
		return Text(msgBroadbandUsage)
	}
	state, county := spaced(args[0]), spaced(args[1])
	pct, err := b.cfg.Broadband.Broadband(ctx, state, county)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			return Text(apiErr.Error())
		}
		return Text(msgBroadbandFailed)
	}
	return Text(fmt.Sprintf("Broadband access percent in %s, %s: %s", county, state, pct))
}
