package cli

import (
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	New(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Name(ctx context.Context, text string) error
	Price(ctx context.Context, text string) error
	Desc(ctx context.Context, text string) error
	Image(ctx context.Context, path string) error
	ShowDraft(ctx context.Context) error
	Submit(ctx context.Context) error
	Cancel(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, path string) error
}

const helpText = `Available commands:
  (l)ist              show the products
  refresh             fetch the products again
  new                 start a new product
  edit <id>           edit an existing product
  name [text]         set the name
  price [n]           set the price
  desc [text]         set the description
  image <path>        choose an image file
  draft               show the form
  submit              save the form
  cancel              discard the form
  delete <id>         delete a product
  export <file>       write the list as CSV
  exit | quit         leave the program`

// runREPL starts a simple read–eval–print loop for the catalog CLI.
//
// It reads a line from in, parses the first token as the command and passes
// the rest of the line as its argument. Commands that prompt read their
// answers from the same in. The loop exits when in is exhausted or when the
// user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; the synchronizer
// logs its own failures and a failed submit simply keeps the form.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in lineReader) {
	for {
		if isTerminal() {
			printlnFn(fmt.Sprintf("catalog %s > ", statusFn()))
		}
		line, err := in.ReadLine()
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "new":
			_ = a.New(ctx)

		case "edit":
			if arg == "" {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, arg)

		case "name":
			_ = a.Name(ctx, arg)

		case "price":
			_ = a.Price(ctx, arg)

		case "desc":
			_ = a.Desc(ctx, arg)

		case "image":
			if arg == "" {
				printlnFn("Usage: image <path>")
				continue
			}
			_ = a.Image(ctx, arg)

		case "draft":
			_ = a.ShowDraft(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "cancel":
			_ = a.Cancel(ctx)

		case "delete":
			if arg == "" {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, arg)

		case "export":
			if arg == "" {
				printlnFn("Usage: export <file>")
				continue
			}
			_ = a.Export(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
