package util

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"
)

// Op is a command understood by the visualizer
type Op string

const (
	OpPut     Op = "put"
	OpGet     Op = "get"
	OpClear   Op = "clear"
	OpShow    Op = "show"
	OpStats   Op = "stats"
	OpLog     Op = "log"
	OpMetrics Op = "metrics"
	OpHelp    Op = "help"
	OpQuit    Op = "quit"
)

// ErrNoCommand is returned for blank and comment lines
var ErrNoCommand = fmt.Errorf("no command")

// Command is one parsed line
type Command struct {
	Op   Op
	Args []string
}

// SafeReadLine blocks until a whole line can be read or
// r returns an error.
// ***warning: expects lines to be \n separated***
func SafeReadLine(r *bufio.Reader) (line []byte, err error) {
	line, err = r.ReadBytes('\n')
	if len(line) > 0 && line[len(line)-1] == '\n' {
		// strip the \n
		line = line[:len(line)-1]
	}
	return
}

// ParseCommand parses a line of the form
//  put key value with spaces
//  get key
//  clear
// Blank lines and lines starting with # yield ErrNoCommand.
// A put with an empty key or value is not an error here.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimRight(line, "\r\b")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Command{}, ErrNoCommand
	}

	fields := strings.SplitN(trimmed, " ", 3)
	op := Op(strings.ToLower(fields[0]))
	args := fields[1:]

	switch op {
	case OpPut:
		// missing parts are passed as empty strings and
		// rejected by the table itself
		for len(args) < 2 {
			args = append(args, "")
		}
		return Command{Op: op, Args: args}, nil
	case OpGet:
		if len(args) != 1 {
			return Command{}, fmt.Errorf("usage: get key")
		}
		return Command{Op: op, Args: args}, nil
	case OpClear, OpShow, OpStats, OpLog, OpMetrics, OpHelp, OpQuit:
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%s takes no argument", op)
		}
		return Command{Op: op}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

// Exhaust all the commands in r, skipping blank lines,
// comments and lines that do not parse.
func Exhaust(r io.Reader) <-chan Command {
	// make the output channel
	var commands = make(chan Command)
	// wrap r in a bufio reader
	src := bufio.NewReader(r)
	go func() {
		defer close(commands)
		for {
			line, err := SafeReadLine(src)
			if len(line) != 0 {
				if cmd, perr := ParseCommand(string(line)); perr == nil {
					commands <- cmd
				} else if perr != ErrNoCommand {
					log.Printf("skipping %q: %v", line, perr)
				}
			}
			if err != nil {
				if err != io.EOF {
					log.Printf("error reading commands: %v", err)
				}
				return
			}
		}
	}()

	return commands
}
