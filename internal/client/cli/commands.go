package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophcatalog/internal/client/client"
	"github.com/dmitrijs2005/gophcatalog/internal/client/export"
	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
)

func (a *App) List(ctx context.Context) error {
	list := a.catalog.Products()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No products")
		return nil
	}
	return RenderProducts(a.out, list, a.config.DateLayout)
}

func (a *App) Refresh(ctx context.Context) error {
	list, err := a.catalog.LoadAll(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Refresh failed, showing the last known list (%s)\n", client.Detail(err))
		return err
	}
	fmt.Fprintf(a.out, "%d products\n", len(list))
	return nil
}

func (a *App) New(ctx context.Context) error {
	a.catalog.CancelEdit()
	if err := a.Name(ctx, ""); err != nil {
		return err
	}
	if err := a.Price(ctx, ""); err != nil {
		return err
	}
	if err := a.Desc(ctx, ""); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Use 'image <path>' to add an image, then 'submit'")
	return nil
}

func (a *App) Edit(ctx context.Context, id string) error {
	if _, err := a.catalog.BeginEditByID(id); err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	return a.ShowDraft(ctx)
}

// Name sets the draft name, prompting when text is empty.
func (a *App) Name(ctx context.Context, text string) error {
	text, err := a.textOrPrompt(text, "Name", ValidateRequired(ErrEmptyName))
	if err != nil {
		return err
	}
	a.catalog.SetName(text)
	return nil
}

func (a *App) Price(ctx context.Context, text string) error {
	text, err := a.textOrPrompt(text, "Price", ValidatePrice)
	if err != nil {
		return err
	}
	price, _ := ParsePrice(text)
	a.catalog.SetPrice(price)
	return nil
}

func (a *App) Desc(ctx context.Context, text string) error {
	text, err := a.textOrPrompt(text, "Description", ValidateRequired(ErrEmptyDescription))
	if err != nil {
		return err
	}
	a.catalog.SetDescription(text)
	return nil
}

// textOrPrompt validates text, asking for it first when it is empty.
func (a *App) textOrPrompt(text, prompt string, validate func(string) error) (string, error) {
	if text == "" {
		var err error
		text, err = askField(a.input, prompt, a.out)
		if err != nil {
			return "", err
		}
	}
	if err := validate(text); err != nil {
		fmt.Fprintln(a.out, err)
		return "", err
	}
	return text, nil
}

func (a *App) Image(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	f := a.catalog.SelectFile(ctx, models.NewFileRef(path))
	if _, err := f.Wait(ctx); err != nil {
		fmt.Fprintln(a.out, "Preview unavailable:", err)
		return nil
	}
	return nil
}

func (a *App) ShowDraft(ctx context.Context) error {
	d := a.catalog.Draft()
	if id := a.catalog.EditingID(); id != "" {
		fmt.Fprintf(a.out, "Editing %s\n", id)
	} else {
		fmt.Fprintln(a.out, "New product")
	}
	fmt.Fprintf(a.out, "  name:        %s\n", d.Name)
	fmt.Fprintf(a.out, "  price:       %s\n", models.FormatPrice(d.Price))
	fmt.Fprintf(a.out, "  description: %s\n", d.Description)
	if d.Image != nil {
		fmt.Fprintf(a.out, "  image:       %s (new)\n", d.Image.Name)
	}
	if d.Preview != "" {
		fmt.Fprintf(a.out, "  preview:     %s\n", abbreviate(d.Preview, 48))
	}
	return nil
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func (a *App) Submit(ctx context.Context) error {
	if err := ValidateDraft(a.catalog.Draft()); err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	if err := a.catalog.Submit(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved")
	return nil
}

func (a *App) Cancel(ctx context.Context) error {
	a.catalog.CancelEdit()
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.catalog.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted", id)
	return nil
}

func (a *App) Export(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	defer f.Close()

	list := a.catalog.Products()
	if err := export.WriteCSV(f, list, a.config.DateLayout); err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	fmt.Fprintf(a.out, "Exported %d products to %s\n", len(list), path)
	return nil
}
