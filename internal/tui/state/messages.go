package state

import (
	"github.com/cristianoliveira/maprepl/internal/mapview"
	"github.com/cristianoliveira/maprepl/internal/repl"
)

// entryRecordedMsg is sent when a dispatched REPL command has been recorded.
type entryRecordedMsg struct {
	Entry repl.Entry
	Err   error
}

// mapOutcomeMsg carries the result of an asynchronous map operation.
type mapOutcomeMsg struct {
	Outcome mapview.Outcome
}
