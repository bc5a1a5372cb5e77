package mapview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cristianoliveira/maprepl/internal/backend"
	apperrors "github.com/cristianoliveira/maprepl/internal/errors"
)

// Bridge alert texts.
const (
	msgEmptyCommand    = "Command cannot be empty"
	msgImproperCommand = "Improper command"
	msgBroadbandUsage  = "Invalid broadband retrieval command. Usage: broadband <state> <county>"
	msgSearchUsage     = "Invalid search command. Usage: search your_keyword"
	msgBackendStatus   = "Failed to fetch data from the backend"
)

// Bridge interprets the map's command box. It recognizes broadband, search
// and mocksearch; anything else is an improper command.
type Bridge struct {
	controller *Controller
	broadband  BroadbandSource
}

// NewBridge creates a bridge driving c.
func NewBridge(c *Controller) *Bridge {
	return &Bridge{controller: c, broadband: c.broadband}
}

// Submit runs one command line.
func (b *Bridge) Submit(ctx context.Context, line string) Outcome {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return b.controller.alert(msgEmptyCommand, apperrors.MessageTypeWarning, nil)
	}
	args := fields[1:]
	switch fields[0] {
	case "broadband":
		return b.broadbandCmd(ctx, args)
	case "search":
		if len(args) != 1 {
			return b.controller.alert(msgSearchUsage, apperrors.MessageTypeWarning, nil)
		}
		return b.controller.AddFilteredLayer(ctx, args[0])
	case "mocksearch":
		if len(args) != 1 {
			return b.controller.alert(msgSearchUsage, apperrors.MessageTypeWarning, nil)
		}
		return b.controller.AddMockLayer()
	default:
		return b.controller.alert(msgImproperCommand, apperrors.MessageTypeWarning, nil)
	}
}

func (b *Bridge) broadbandCmd(ctx context.Context, args []string) Outcome {
	if len(args) != 2 {
		return b.controller.alert(msgBroadbandUsage, apperrors.MessageTypeWarning, nil)
	}
	state := strings.ReplaceAll(args[0], "_", " ")
	county := strings.ReplaceAll(args[1], "_", " ")

	pct, err := b.broadband.Broadband(ctx, state, county)
	if err != nil {
		var apiErr *backend.APIError
		switch {
		case errors.As(err, &apiErr):
			return b.controller.alert("Failed to retrieve broadband data: "+apiErr.Message, apperrors.MessageTypeError, nil)
		case errors.Is(err, backend.ErrBadStatus):
			return b.controller.alert(msgBackendStatus, apperrors.MessageTypeError, nil)
		default:
			return b.controller.alert(fmt.Sprintf("An error occurred while fetching broadband data: %v", err), apperrors.MessageTypeError, nil)
		}
	}
	return b.controller.FocusMap(ctx, state, county, pct)
}
