package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Write(ctx context.Context, name string) error
	Read(ctx context.Context, name string) error
	Done(ctx context.Context) error
	Stats(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on end of input or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account and log in
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - write <file>   encrypt text into a document file
//	  - read <file>    decrypt and print a document file
//	  - done           mark today's goal as completed
//	  - stats          show the current and longest streak
//	  - logout         log out
//
// Handler errors are printed as short messages and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gn%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: write <file>, read <file>, done, stats, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "write", "read":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <file>", cmd))
				continue
			}
			if cmd == "write" {
				cmdErr = a.Write(ctx, args[0])
			} else {
				cmdErr = a.Read(ctx, args[0])
			}

		case "done":
			cmdErr = a.Done(ctx)

		case "stats":
			cmdErr = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(errorLine(cmdErr))
		}
	}
}
