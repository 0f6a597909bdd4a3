package render

import (
	"fmt"

	"github.com/vanng822/go-premailer/premailer"
)

// Inliner moves stylesheet rules into inline style attributes so the HTML
// survives mail clients that strip style blocks.
type Inliner struct{}

// NewInliner creates a new Inliner.
func NewInliner() Inliner {
	return Inliner{}
}

// Inline returns the HTML with its CSS inlined.
func (Inliner) Inline(html string) (string, error) {
	p, err := premailer.NewPremailerFromString(html, premailer.NewOptions())
	if err != nil {
		return "", fmt.Errorf("failed to parse html for CSS inlining: %w", err)
	}
	out, err := p.Transform()
	if err != nil {
		return "", fmt.Errorf("failed to inline CSS: %w", err)
	}
	return out, nil
}
