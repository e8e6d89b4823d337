package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal on stdin. Prompts are only
// echoed to a terminal so piped scripts produce clean output.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var (
	ErrEmptyName        = errors.New("name is required")
	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidPrice     = errors.New("price must be a non-negative number")
)

// lineReader hands out user input one trimmed line at a time. The REPL and
// the field prompts read from the same lineReader, so a piped script answers
// each prompt with the line that follows the command.
type lineReader interface {
	ReadLine() (string, error)
}

type lineInput struct {
	r *bufio.Reader
}

func newLineInput(r io.Reader) *lineInput {
	return &lineInput{r: bufio.NewReader(r)}
}

// ReadLine returns the next line without its line ending. A final line
// without a newline is still returned; io.EOF comes after it.
func (in *lineInput) ReadLine() (string, error) {
	line, err := in.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askField writes "label: " to w and reads the answer from in.
func askField(in lineReader, label string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}
	return in.ReadLine()
}

// ParsePrice reads a user-entered price. Empty input is zero.
func ParsePrice(text string) (decimal.Decimal, error) {
	d, err := models.ParsePrice(strings.TrimSpace(text))
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, text)
	}
	return d, nil
}

// ValidateRequired rejects blank input with err.
func ValidateRequired(err error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return err
		}
		return nil
	}
}

// ValidatePrice is the price check used by interactive prompts.
func ValidatePrice(s string) error {
	_, err := ParsePrice(s)
	return err
}

// ValidateDraft applies the form rules checked before a submit.
func ValidateDraft(d models.Draft) error {
	if err := ValidateRequired(ErrEmptyName)(d.Name); err != nil {
		return err
	}
	if err := ValidateRequired(ErrEmptyDescription)(d.Description); err != nil {
		return err
	}
	if d.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}
