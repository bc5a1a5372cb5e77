package repl

import (
	"fmt"
	"strings"
)

// Parse splits a command line on whitespace runs. ok is false for empty or
// whitespace-only lines.
func Parse(line string) (name string, args []string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}

func notFoundMessage(name string) string {
	return fmt.Sprintf("Command not found: %s. Input \"register <commandName> <function>\" to register a new command", name)
}

// spaced turns underscores into spaces so multi-word names fit in one token.
func spaced(token string) string {
	return strings.ReplaceAll(token, "_", " ")
}
