// Package render produces the outbound order notifications. Each
// notification exists in two narrative tracks, paid ("order paid, here is
// your receipt") and unpaid ("new order, awaiting payment"), each with a
// vendor and a buyer variant, each as plain text and HTML.
package render

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"storefront/internal/models"
)

// Template names, as selected by the checkout workflow.
const (
	VendorPaidText   = "vendor_paid_text.tmpl"
	VendorPaidHTML   = "vendor_paid_html.tmpl"
	VendorUnpaidText = "vendor_unpaid_text.tmpl"
	VendorUnpaidHTML = "vendor_unpaid_html.tmpl"
	BuyerPaidText    = "buyer_paid_text.tmpl"
	BuyerPaidHTML    = "buyer_paid_html.tmpl"
	BuyerUnpaidText  = "buyer_unpaid_text.tmpl"
	BuyerUnpaidHTML  = "buyer_unpaid_html.tmpl"
)

// MailData is the context every mail template renders against.
type MailData struct {
	Cart   *models.Cart
	Wallet *models.Wallet
	Order  *models.Order
}

//go:embed templates/*.tmpl
var templateFS embed.FS

// Engine renders the embedded mail templates.
type Engine struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	text, err := texttemplate.ParseFS(templateFS, "templates/*_text.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text mail templates: %w", err)
	}
	html, err := htmltemplate.ParseFS(templateFS, "templates/*_html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse html mail templates: %w", err)
	}
	return &Engine{text: text, html: html}, nil
}

// RenderText executes a plain-text mail template by name.
func (e *Engine) RenderText(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.text.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render text template %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderHTML executes an HTML mail template by name.
func (e *Engine) RenderHTML(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.html.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render html template %s: %w", name, err)
	}
	return buf.String(), nil
}
