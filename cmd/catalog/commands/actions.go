package commands

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophcatalog/internal/client/cli"
	ucli "github.com/urfave/cli/v3"
)

func ReplAction(ctx context.Context, cmd *ucli.Command) error {
	return withApp(ctx, cmd, func(ctx context.Context, app *cli.App) error {
		return app.Run(ctx)
	})
}

// ListAction prints the products. When the API is unreachable the cached
// snapshot is printed instead and the error is still reported.
func ListAction(ctx context.Context, cmd *ucli.Command) error {
	return withApp(ctx, cmd, func(ctx context.Context, app *cli.App) error {
		defer app.Close(ctx)

		loadErr := app.Load(ctx)
		if err := app.List(ctx); err != nil {
			return err
		}
		return loadErr
	})
}

func CreateAction(ctx context.Context, cmd *ucli.Command) error {
	return withApp(ctx, cmd, func(ctx context.Context, app *cli.App) error {
		defer app.Close(ctx)

		if err := fillDraft(ctx, cmd, app); err != nil {
			return err
		}
		return app.Submit(ctx)
	})
}

// UpdateAction loads the list, starts editing --id and applies only the
// fields given on the command line before submitting.
func UpdateAction(ctx context.Context, cmd *ucli.Command) error {
	return withApp(ctx, cmd, func(ctx context.Context, app *cli.App) error {
		defer app.Close(ctx)

		if err := app.Load(ctx); err != nil && len(app.Catalog().Products()) == 0 {
			return err
		}
		if _, err := app.Catalog().BeginEditByID(cmd.String("id")); err != nil {
			return err
		}
		if err := fillDraft(ctx, cmd, app); err != nil {
			return err
		}
		return app.Submit(ctx)
	})
}

func DeleteAction(ctx context.Context, cmd *ucli.Command) error {
	return withApp(ctx, cmd, func(ctx context.Context, app *cli.App) error {
		defer app.Close(ctx)
		return app.Delete(ctx, cmd.String("id"))
	})
}

func ExportAction(ctx context.Context, cmd *ucli.Command) error {
	return withApp(ctx, cmd, func(ctx context.Context, app *cli.App) error {
		defer app.Close(ctx)

		loadErr := app.Load(ctx)
		if loadErr != nil && len(app.Catalog().Products()) == 0 {
			return loadErr
		}
		return app.Export(ctx, cmd.String("out"))
	})
}

// fillDraft applies the form flags, or the interactive prompts, to the draft.
func fillDraft(ctx context.Context, cmd *ucli.Command, app *cli.App) error {
	sync := app.Catalog()

	if cmd.Bool("interactive") {
		d, err := cli.PromptDraft(sync.Draft())
		if err != nil {
			return err
		}
		sync.SetName(d.Name)
		sync.SetPrice(d.Price)
		sync.SetDescription(d.Description)
		if d.Image != nil {
			return app.Image(ctx, d.Image.Path)
		}
		return nil
	}

	if cmd.IsSet("name") {
		if err := app.Name(ctx, cmd.String("name")); err != nil {
			return err
		}
	}
	if cmd.IsSet("price") {
		if err := app.Price(ctx, cmd.String("price")); err != nil {
			return err
		}
	}
	if cmd.IsSet("desc") {
		if err := app.Desc(ctx, cmd.String("desc")); err != nil {
			return err
		}
	}
	if path := cmd.String("image"); path != "" {
		if err := app.Image(ctx, path); err != nil {
			return fmt.Errorf("image: %w", err)
		}
	}
	return nil
}
