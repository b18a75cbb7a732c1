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

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
// Commands receive the words following the command name.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Categories(ctx context.Context) error
	Feed(ctx context.Context) error
	Read(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	Prefs(ctx context.Context, args []string) error
	Like(ctx context.Context, args []string) error
	Comment(ctx context.Context, args []string) error
	Comments(ctx context.Context, args []string) error
	Share(ctx context.Context) error
	Recommended(ctx context.Context, args []string) error
	Export(ctx context.Context) error
	Import(ctx context.Context, args []string) error
	Automation(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, categories, exit"
	helpReader    = "Available commands: feed, read <id>, profile, prefs [a,b], categories, like <id>, comment <id>, comments <id>, share, recommended [n], export, logout, exit"
	helpAdmin     = helpReader + "\nAdmin commands: import <file>, automation"
)

// runREPL starts a simple read–eval–print loop for the ReadDaily CLI.
//
// It reads a line from r, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
// Commands read their own prompts from the same reader.
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("rd %s> ", statusFn()))
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
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
			switch {
			case a.isAdmin():
				printlnFn(helpAdmin)
			case a.isLoggedIn():
				printlnFn(helpReader)
			default:
				printlnFn(helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx, args)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "categories":
			cmdErr = a.Categories(ctx)

		case "f", "feed":
			cmdErr = a.Feed(ctx)

		case "read":
			cmdErr = a.Read(ctx, args)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "prefs":
			cmdErr = a.Prefs(ctx, args)

		case "like":
			cmdErr = a.Like(ctx, args)

		case "comment":
			cmdErr = a.Comment(ctx, args)

		case "comments":
			cmdErr = a.Comments(ctx, args)

		case "share":
			cmdErr = a.Share(ctx)

		case "recommended":
			cmdErr = a.Recommended(ctx, args)

		case "export":
			cmdErr = a.Export(ctx)

		case "import":
			cmdErr = a.Import(ctx, args)

		case "automation":
			cmdErr = a.Automation(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describeError(cmdErr))
		}

		if err != nil {
			return
		}
	}
}
