package cli

import (
	"strings"

	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
	"github.com/manifoldco/promptui"
)

// runPrompt is a test seam for promptui.Prompt.Run.
var runPrompt = func(p *promptui.Prompt) (string, error) {
	return p.Run()
}

// PromptDraft asks for every form field on a terminal, starting from d.
// An empty image answer keeps the image unchanged.
func PromptDraft(d models.Draft) (models.Draft, error) {
	name, err := runPrompt(&promptui.Prompt{
		Label:    "Name",
		Default:  d.Name,
		Validate: ValidateRequired(ErrEmptyName),
	})
	if err != nil {
		return d, err
	}

	price, err := runPrompt(&promptui.Prompt{
		Label:    "Price",
		Default:  models.FormatPrice(d.Price),
		Validate: ValidatePrice,
	})
	if err != nil {
		return d, err
	}

	desc, err := runPrompt(&promptui.Prompt{
		Label:    "Description",
		Default:  d.Description,
		Validate: ValidateRequired(ErrEmptyDescription),
	})
	if err != nil {
		return d, err
	}

	image, err := runPrompt(&promptui.Prompt{
		Label: "Image file (optional)",
	})
	if err != nil {
		return d, err
	}

	d.Name = strings.TrimSpace(name)
	d.Price, err = ParsePrice(price)
	if err != nil {
		return d, err
	}
	d.Description = strings.TrimSpace(desc)
	if image = strings.TrimSpace(image); image != "" {
		ref := models.NewFileRef(image)
		d.Image = &ref
	}
	return d, nil
}
