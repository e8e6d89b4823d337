// Package commands defines the command surface of the catalog binary.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/gophcatalog/internal/buildinfo"
	"github.com/dmitrijs2005/gophcatalog/internal/client/cli"
	"github.com/dmitrijs2005/gophcatalog/internal/client/config"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	ucli "github.com/urfave/cli/v3"
)

// Root builds the catalog command tree. Without a subcommand it starts the
// REPL.
func Root() *ucli.Command {
	return &ucli.Command{
		Name:    "catalog",
		Usage:   "manage a remote product catalog",
		Version: buildinfo.Version(),
		Flags:   config.Flags(),
		Action:  ReplAction,
		Commands: []*ucli.Command{
			{
				Name:   "repl",
				Usage:  "start the interactive shell",
				Action: ReplAction,
			},
			{
				Name:   "list",
				Usage:  "print the products",
				Action: ListAction,
			},
			{
				Name:  "create",
				Usage: "create a product",
				Flags: append(formFlags(),
					&ucli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "prompt for every field"},
				),
				Action: CreateAction,
			},
			{
				Name:  "update",
				Usage: "update a product; unset fields keep their values",
				Flags: append(formFlags(),
					&ucli.StringFlag{Name: "id", Usage: "product id", Required: true},
					&ucli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "prompt for every field"},
				),
				Action: UpdateAction,
			},
			{
				Name:  "delete",
				Usage: "delete a product",
				Flags: []ucli.Flag{
					&ucli.StringFlag{Name: "id", Usage: "product id", Required: true},
				},
				Action: DeleteAction,
			},
			{
				Name:  "export",
				Usage: "write the products as CSV",
				Flags: []ucli.Flag{
					&ucli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file", Value: "products.csv"},
				},
				Action: ExportAction,
			},
			{
				Name:  "version",
				Usage: "print build information",
				Action: func(ctx context.Context, cmd *ucli.Command) error {
					buildinfo.PrintBuildData(output(cmd))
					return nil
				},
			},
		},
	}
}

func formFlags() []ucli.Flag {
	return []ucli.Flag{
		&ucli.StringFlag{Name: "name", Usage: "product name"},
		&ucli.StringFlag{Name: "price", Usage: "price, e.g. 9.99"},
		&ucli.StringFlag{Name: "desc", Usage: "product description"},
		&ucli.StringFlag{Name: "image", Usage: "path of an image file to upload"},
	}
}

func output(cmd *ucli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// withApp loads the configuration for cmd, builds the logger and the App,
// and runs fn with them.
func withApp(ctx context.Context, cmd *ucli.Command, fn func(ctx context.Context, app *cli.App) error) error {
	cfg, err := config.FromCommand(cmd)
	if err != nil {
		return err
	}

	log, err := logging.NewZapLogger(logging.Options{
		Level:    cfg.LogLevel,
		Filename: cfg.LogFile,
		Console:  true,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	app.SetOutput(output(cmd))

	return fn(ctx, app)
}
