package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/url"

	"storefront/internal/cart"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// CartHandler serves the session cart pages and the checkout flow.
type CartHandler struct {
	catalog           *services.CatalogService
	wallets           repositories.WalletRepository
	checkout          *services.CheckoutService
	codes             services.CodeGenerator
	store             *session.Store
	preferredCurrency string
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(
	catalog *services.CatalogService,
	wallets repositories.WalletRepository,
	checkout *services.CheckoutService,
	codes services.CodeGenerator,
	store *session.Store,
	preferredCurrency string,
) *CartHandler {
	return &CartHandler{
		catalog:           catalog,
		wallets:           wallets,
		checkout:          checkout,
		codes:             codes,
		store:             store,
		preferredCurrency: preferredCurrency,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/cart", h.HandleShowCart)
	router.Post("/cart", h.HandleAddToCart)
	router.Get("/cart/remove/:id/:option?", h.HandleRemoveFromCart)
	router.Post("/cart/checkout", h.HandleCheckout)
	router.Get("/cart/receipt", h.HandleReceipt)
	router.Post("/cart/set-currency", h.HandleSetCurrency)
}

type addToCartRequest struct {
	ID     string `form:"id"`
	Option string `form:"option"`
}

// HandleShowCart renders the cart page with the payment QR code for the
// preferred currency, when a matching wallet is configured.
func (h *CartHandler) HandleShowCart(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	cartSession := cartFromSession(sess, h.preferredCurrency)
	messages := consumeFlashes(sess)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	return h.renderCart(c, cartSession, messages, nil, &models.Order{})
}

// HandleAddToCart adds one unit of a product to the session cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Redirect("/", fiber.StatusFound)
	}

	product, err := h.catalog.GetProductByID(req.ID)
	if err != nil {
		log.Printf("Error fetching product %s: %v", req.ID, err)
		return c.Redirect("/", fiber.StatusFound)
	}

	cartSession := cartFromSession(sess, h.preferredCurrency)
	cart.Add(product, req.Option, cartSession)
	putCart(sess, cartSession)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	return c.Redirect("/cart", fiber.StatusFound)
}

// HandleRemoveFromCart removes one matching unit from the session cart.
// Removing an item that is not in the cart is a no-op.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	option := c.Params("option")
	if decoded, err := url.PathUnescape(option); err == nil {
		option = decoded
	}

	cartSession := cartFromSession(sess, h.preferredCurrency)
	cart.Remove(c.Params("id"), option, cartSession)
	putCart(sess, cartSession)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	return c.Redirect("/cart", fiber.StatusFound)
}

// HandleCheckout validates the submitted order details and runs the
// checkout pipeline. Validation failures re-render the cart page with
// the submitted details so the buyer can correct them.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	var order models.Order
	if err := c.BodyParser(&order); err != nil {
		addFlash(sess, "error", "Something went wrong, please try again.")
		if err := sess.Save(); err != nil {
			log.Printf("Error saving session: %v", err)
		}
		return c.Redirect("/cart", fiber.StatusFound)
	}

	cartSession := cartFromSession(sess, h.preferredCurrency)
	result, err := h.checkout.Checkout(cartSession, &order)
	if err != nil {
		log.Printf("Checkout failed: %v", err)
		putCart(sess, cartSession)
		addFlash(sess, "error", "Something went wrong, please try again.")
		if err := sess.Save(); err != nil {
			log.Printf("Error saving session: %v", err)
		}
		return c.Redirect("/cart", fiber.StatusFound)
	}

	if len(result.FieldErrors) > 0 {
		messages := consumeFlashes(sess)
		if err := sess.Save(); err != nil {
			log.Printf("Error saving session: %v", err)
		}
		return h.renderCart(c, cartSession, messages, result.FieldErrors, &order)
	}

	putCart(sess, cartSession)
	if result.Notice != "" {
		addFlash(sess, "success", result.Notice)
	}
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	return c.Redirect(result.RedirectTo, fiber.StatusFound)
}

// HandleReceipt renders the order receipt. The first visit after a paid
// checkout snapshots the purchased cart and then empties the live one,
// so reloading the page shows an empty receipt.
func (h *CartHandler) HandleReceipt(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	cartSession := cartFromSession(sess, h.preferredCurrency)
	messages := consumeFlashes(sess)

	if cartSession.Order == nil {
		if err := sess.Save(); err != nil {
			log.Printf("Error saving session: %v", err)
		}
		return c.Render("receipt", fiber.Map{
			"Cart":     cartSession,
			"Messages": messages,
			"Referrer": referrerOr(c, "/"),
		})
	}

	snapshot := cart.Snapshot(cartSession)

	var qr template.URL
	if snapshot.Order.Transaction != "" {
		uri, err := h.codes.DataURI(snapshot.Order.Transaction)
		if err != nil {
			log.Printf("Error generating receipt QR code: %v", err)
		} else {
			qr = template.URL(uri)
		}
	}

	cart.Empty(cartSession)
	putCart(sess, cartSession)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	return c.Render("receipt", fiber.Map{
		"Cart":     snapshot,
		"Messages": messages,
		"QR":       qr,
		"Referrer": referrerOr(c, "/"),
	})
}

type setCurrencyRequest struct {
	Currency string `form:"currency"`
}

// HandleSetCurrency switches the cart's preferred currency and
// reformats the displayed prices.
func (h *CartHandler) HandleSetCurrency(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	var req setCurrencyRequest
	if err := c.BodyParser(&req); err != nil || req.Currency == "" {
		return c.Redirect("/cart", fiber.StatusFound)
	}

	cartSession := cartFromSession(sess, h.preferredCurrency)
	cartSession.PreferredCurrency = req.Currency
	cart.Recompute(cartSession)
	putCart(sess, cartSession)
	addFlash(sess, "info", "Currency switched to "+req.Currency)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	return c.Redirect(referrerOr(c, "/cart"), fiber.StatusFound)
}

// renderCart renders the cart page. The wallet lookup is best effort: a
// missing wallet for the preferred currency just hides the payment QR
// code.
func (h *CartHandler) renderCart(c *fiber.Ctx, cartSession *models.Cart, messages []Flash, fieldErrors []validation.FieldError, details *models.Order) error {
	wallets, err := h.wallets.GetAll()
	if err != nil {
		log.Printf("Error listing wallets: %v", err)
	}

	var qr template.URL
	wallet, err := h.wallets.GetByCurrency(cartSession.PreferredCurrency)
	if err != nil {
		if !errors.Is(err, repositories.ErrWalletNotFound) {
			log.Printf("Error fetching wallet for %s: %v", cartSession.PreferredCurrency, err)
		}
	} else {
		uri, err := h.codes.DataURI(wallet.Address)
		if err != nil {
			log.Printf("Error generating wallet QR code: %v", err)
		} else {
			qr = template.URL(uri)
		}
	}

	return c.Render("cart", fiber.Map{
		"Cart":     cartSession,
		"Messages": messages,
		"Errors":   fieldErrors,
		"Details":  details,
		"QR":       qr,
		"Wallets":  wallets,
		"Referrer": referrerOr(c, "/"),
	})
}

func referrerOr(c *fiber.Ctx, fallback string) string {
	if ref := c.Get(fiber.HeaderReferer); ref != "" {
		return ref
	}
	return fallback
}
