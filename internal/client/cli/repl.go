package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	Apply(ctx context.Context, args []string) error
	History(ctx context.Context) error
	Token(ctx context.Context) error
	Logout(ctx context.Context) error
	Forget(ctx context.Context) error
}

const helpText = "Available commands: apply <jobId>, history, token, logout, forget, exit"

// runREPL reads one command per line and dispatches it. It returns on EOF
// or on "exit"/"quit". Handler errors are reported and the loop goes on.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		printlnFn("jobintake> ")
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "apply":
			cmdErr = a.Apply(ctx, parts[1:])

		case "history":
			cmdErr = a.History(ctx)

		case "token":
			cmdErr = a.Token(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "forget":
			cmdErr = a.Forget(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("error:", cmdErr)
		}
	}
}
