// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported reports that no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard unavailable (install xclip, xsel or wl-clipboard)")

// Copier places text on a clipboard.
type Copier interface {
	Copy(text string) error
}

// System writes to the desktop clipboard.
type System struct{}

var _ Copier = System{}

// Copy implements Copier.
func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// Func adapts a function to Copier.
type Func func(text string) error

// Copy implements Copier.
func (f Func) Copy(text string) error { return f(text) }
