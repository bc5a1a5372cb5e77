// Package errors routes user-facing failures to the surface that should show
// them: colored console lines for the CLI, modal alerts for the map view.
package errors

import "github.com/cristianoliveira/maprepl/internal/colors"

// ErrorHandler is implemented by every alert surface.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
	// Push routes msg by type.
	Push(msg string, msgType MessageType)
}

var (
	_ ErrorHandler = (*CLIHandler)(nil)
	_ ErrorHandler = (*TUIHandler)(nil)
)

// ColorOutput is the console sink used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// ColorsOutput writes through the colors package.
type ColorsOutput struct{}

func (ColorsOutput) Error(msgs ...string)   { colors.Error(msgs...) }
func (ColorsOutput) Warning(msgs ...string) { colors.Warning(msgs...) }
func (ColorsOutput) Info(msgs ...string)    { colors.Info(msgs...) }
func (ColorsOutput) Success(msgs ...string) { colors.Success(msgs...) }

// CLIHandler prints alerts as console lines. Nothing is queued, so there is
// never anything to dismiss.
type CLIHandler struct {
	out ColorOutput
}

// NewCLIHandler creates a handler writing to out.
func NewCLIHandler(out ColorOutput) *CLIHandler {
	return &CLIHandler{out: out}
}

// NewDefaultCLIHandler creates a CLI handler using ColorsOutput.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(ColorsOutput{})
}

func (h *CLIHandler) Error(msg string)   { h.out.Error(msg) }
func (h *CLIHandler) Warning(msg string) { h.out.Warning(msg) }
func (h *CLIHandler) Info(msg string)    { h.out.Info(msg) }
func (h *CLIHandler) Success(msg string) { h.out.Success(msg) }

// Push prints msg with the style of its type.
func (h *CLIHandler) Push(msg string, msgType MessageType) {
	switch msgType {
	case MessageTypeError:
		h.Error(msg)
	case MessageTypeWarning:
		h.Warning(msg)
	case MessageTypeSuccess:
		h.Success(msg)
	default:
		h.Info(msg)
	}
}
