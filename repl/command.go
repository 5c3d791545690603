package repl

import (
	"strings"
)

type Op int

const (
	OpSet Op = iota
	OpGet
	OpUnset
	OpNumEqualTo
	OpBegin
	OpRollback
	OpCommit
	OpEnd
	OpShow
)

var ops = map[string]Op{
	"SET":        OpSet,
	"GET":        OpGet,
	"UNSET":      OpUnset,
	"NUMEQUALTO": OpNumEqualTo,
	"BEGIN":      OpBegin,
	"ROLLBACK":   OpRollback,
	"COMMIT":     OpCommit,
	"END":        OpEnd,
	"SHOW":       OpShow,
}

func (op Op) String() string {
	for nam, o := range ops {
		if o == op {
			return nam
		}
	}
	return "UNKNOWN"
}

// BadCommand is returned for a line which can not be parsed; the text is shown to the user
// as is.
type BadCommand string

func (bc BadCommand) Error() string {
	return string(bc)
}

type Command struct {
	Op    Op
	Key   string
	Value string
}

// ParseCommand parses one line. Fields are separated by single spaces so that the value of a
// SET keeps any runs of spaces it contains. Command names must be upper case.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, BadCommand("Invalid command")
	}

	fields := strings.Split(line, " ")
	nam, args := fields[0], fields[1:]
	op, ok := ops[nam]
	if !ok {
		return Command{}, BadCommand("Unknown command")
	}

	cmd := Command{Op: op}
	switch op {
	case OpSet:
		if len(args) < 2 || args[0] == "" {
			return Command{}, BadCommand("Not enough arguments for SET command")
		}
		cmd.Key = args[0]
		cmd.Value = strings.Join(args[1:], " ")
	case OpGet, OpUnset:
		if len(args) != 1 {
			return Command{}, BadCommand("Invalid arguments for " + nam + " command")
		}
		cmd.Key = args[0]
	case OpNumEqualTo:
		if len(args) != 1 {
			return Command{}, BadCommand("Invalid arguments for NUMEQUALTO command")
		}
		cmd.Value = args[0]
	}
	return cmd, nil
}
