package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	ShowGroup(ctx context.Context) error
	SetGroup(ctx context.Context, name string) error
	SetEmptyGroup(ctx context.Context) error
	ClearGroup(ctx context.Context) error
	Save(ctx context.Context) error
	SaveAnonymous(ctx context.Context) error
	Show(ctx context.Context) error
	Remove(ctx context.Context) error
	Migrate(ctx context.Context) error
	Keys(ctx context.Context) error
}

const helpText = "Available commands: group, setgroup <name>, setgroup-empty, cleargroup, save, anon, show, remove, migrate, keys, exit"

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit" or "quit". Handler errors are printed and the loop goes on.
// Commands that prompt read their input from the same reader.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("uk %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		err = nil
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "group":
			err = a.ShowGroup(ctx)
		case "setgroup":
			if len(args) != 1 {
				printlnFn("Usage: setgroup <name>")
				continue
			}
			err = a.SetGroup(ctx, args[0])
		case "setgroup-empty":
			err = a.SetEmptyGroup(ctx)
		case "cleargroup":
			err = a.ClearGroup(ctx)
		case "save":
			err = a.Save(ctx)
		case "anon":
			err = a.SaveAnonymous(ctx)
		case "show":
			err = a.Show(ctx)
		case "remove":
			err = a.Remove(ctx)
		case "migrate":
			err = a.Migrate(ctx)
		case "keys":
			err = a.Keys(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
