package services

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/mailer"
	"storefront/internal/models"
	"storefront/internal/render"
	"storefront/internal/repositories"
	"storefront/internal/validation"
)

// Renderer produces notification bodies from named templates.
type Renderer interface {
	RenderText(name string, data any) (string, error)
	RenderHTML(name string, data any) (string, error)
}

// CSSInliner moves stylesheet rules into inline style attributes.
type CSSInliner interface {
	Inline(html string) (string, error)
}

// CodeGenerator produces machine-scannable payment-instruction images.
type CodeGenerator interface {
	PNG(payload string) ([]byte, error)
	DataURI(payload string) (string, error)
}

// EventPublisher publishes order events to the message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CheckoutConfig carries the deployment-specific checkout settings.
type CheckoutConfig struct {
	// VendorAddress receives vendor notifications and is the default
	// sender for buyer notifications.
	VendorAddress string
	// TorDelivery swaps buyer to/from so notifications stay deliverable
	// behind an onion service without a public mail route.
	TorDelivery bool
	// ProductImageDir is where the catalog's product images live on disk.
	ProductImageDir string
}

// CheckoutResult reports the outcome of a completed checkout attempt.
// FieldErrors is set when the submission failed validation; the cart is
// untouched in that case and no notifications were dispatched.
type CheckoutResult struct {
	FieldErrors []validation.FieldError
	Paid        bool
	RedirectTo  string
	Notice      string
}

// CheckoutService orchestrates the checkout workflow: validation, order
// attachment, template selection, notification rendering and dispatch,
// and cart cleanup. Every collaborator failure is terminal for the
// current request but never for the process; no step is retried and no
// partial success is rolled back. If the vendor notification dispatches
// and the buyer notification then fails, the cart is deliberately left
// un-emptied so the buyer sees an error rather than a false success.
type CheckoutService struct {
	walletRepo repositories.WalletRepository
	renderer   Renderer
	inliner    CSSInliner
	codes      CodeGenerator
	mail       mailer.Mailer
	events     EventPublisher // may be nil
	cfg        CheckoutConfig
}

// NewCheckoutService creates a new CheckoutService. The event publisher
// may be nil, in which case no order events are published.
func NewCheckoutService(
	walletRepo repositories.WalletRepository,
	renderer Renderer,
	inliner CSSInliner,
	codes CodeGenerator,
	mail mailer.Mailer,
	events EventPublisher,
	cfg CheckoutConfig,
) *CheckoutService {
	return &CheckoutService{
		walletRepo: walletRepo,
		renderer:   renderer,
		inliner:    inliner,
		codes:      codes,
		mail:       mail,
		events:     events,
		cfg:        cfg,
	}
}

// Checkout runs the checkout workflow against the given cart and
// submitted order. The steps are strictly sequential; each one feeds the
// next and the first failure ends the request.
func (s *CheckoutService) Checkout(c *models.Cart, order *models.Order) (*CheckoutResult, error) {
	if errs := validation.ValidateOrder(order); len(errs) > 0 {
		return &CheckoutResult{FieldErrors: errs}, nil
	}

	wallet, err := s.walletRepo.GetByCurrency(c.PreferredCurrency)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	paid := strings.TrimSpace(order.Transaction) != ""
	cart.Purchase(order, c)

	vendorText, vendorHTML, buyerText, buyerHTML := selectTemplates(paid)
	qrPayload := wallet.Address
	if paid {
		qrPayload = order.Transaction
	}

	data := render.MailData{Cart: c, Wallet: wallet, Order: order}

	textVendor, err := s.renderer.RenderText(vendorText, data)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	qrPNG, err := s.codes.PNG(qrPayload)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	htmlVendor, err := s.renderer.RenderHTML(vendorHTML, data)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	htmlVendor, err = s.inliner.Inline(htmlVendor)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	attachments := s.attachments(c, qrPNG)

	vendorSubject := "New order received - unpaid"
	if paid {
		vendorSubject = "New order received"
	}
	from := strings.TrimSpace(order.Email)
	if from == "" {
		from = s.cfg.VendorAddress
	}
	err = s.mail.Send(&mailer.Message{
		To:          s.cfg.VendorAddress,
		From:        from,
		Subject:     vendorSubject,
		Text:        textVendor,
		HTML:        htmlVendor,
		Attachments: attachments,
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	// The buyer may decline email contact; without an address there is
	// no round-trip to await, so the receipt renders immediately.
	buyerEmail := strings.TrimSpace(order.Email)
	if buyerEmail == "" {
		s.publishOrderReceived(c, order, paid)
		return &CheckoutResult{
			Paid:       paid,
			RedirectTo: "/cart/receipt",
			Notice:     "Your order has been received. Print this receipt for your records.",
		}, nil
	}

	textBuyer, err := s.renderer.RenderText(buyerText, data)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	htmlBuyer, err := s.renderer.RenderHTML(buyerHTML, data)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	htmlBuyer, err = s.inliner.Inline(htmlBuyer)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	buyerSubject := "Order received - payment instructions"
	if paid {
		buyerSubject = "Order received - here is your receipt"
	}
	to, sender := buyerEmail, s.cfg.VendorAddress
	if s.cfg.TorDelivery {
		to, sender = s.cfg.VendorAddress, buyerEmail
	}
	err = s.mail.Send(&mailer.Message{
		To:          to,
		From:        sender,
		Subject:     buyerSubject,
		Text:        textBuyer,
		HTML:        htmlBuyer,
		Attachments: attachments,
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	s.publishOrderReceived(c, order, paid)

	if paid {
		// The cart stays intact so the receipt view can render the
		// just-completed order; the receipt handler empties it.
		return &CheckoutResult{
			Paid:       true,
			RedirectTo: "/cart/receipt",
			Notice:     fmt.Sprintf("Your order has been received. An email copy of this receipt will be sent to %s", buyerEmail),
		}, nil
	}

	cart.Empty(c)
	return &CheckoutResult{
		Paid:       false,
		RedirectTo: "/",
		Notice:     fmt.Sprintf("Your order has been received. Transaction instructions will be sent to %s", buyerEmail),
	}, nil
}

func selectTemplates(paid bool) (vendorText, vendorHTML, buyerText, buyerHTML string) {
	if paid {
		return render.VendorPaidText, render.VendorPaidHTML, render.BuyerPaidText, render.BuyerPaidHTML
	}
	return render.VendorUnpaidText, render.VendorUnpaidHTML, render.BuyerUnpaidText, render.BuyerUnpaidHTML
}

// attachments collects one entry per distinct product image referenced by
// the cart's items, plus the generated payment-instruction image.
func (s *CheckoutService) attachments(c *models.Cart, qrPNG []byte) []mailer.Attachment {
	seen := make(map[string]bool)
	var attachments []mailer.Attachment
	for _, item := range c.Items {
		if item.Image == "" || seen[item.Image] {
			continue
		}
		seen[item.Image] = true
		attachments = append(attachments, mailer.Attachment{
			Filename:  item.Image,
			Path:      filepath.Join(s.cfg.ProductImageDir, item.Image),
			ContentID: item.Image,
		})
	}
	return append(attachments, mailer.Attachment{
		Filename:    "qr.png",
		Content:     qrPNG,
		ContentType: "image/png",
		ContentID:   "qr.png",
	})
}

// publishOrderReceived emits an order.received event. Publication is
// best-effort: the order already went out by mail, so a broker failure is
// logged and swallowed.
func (s *CheckoutService) publishOrderReceived(c *models.Cart, order *models.Order, paid bool) {
	if s.events == nil {
		return
	}
	event := map[string]interface{}{
		"recipient": order.Recipient,
		"email":     order.Email,
		"paid":      paid,
		"total":     c.Total,
		"currency":  c.PreferredCurrency,
		"items":     len(c.Items),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}
	if err := s.events.Publish("order", "order.received", body); err != nil {
		log.Printf("Warning: Failed to publish order received event for %s: %v", order.Recipient, err)
	}
}
