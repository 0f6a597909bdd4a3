// Package cart implements the session-scoped shopping cart engine. Every
// operation takes the cart as an explicit argument and mutates it in place;
// the surrounding handlers rely on that aliasing, since the rendered page
// and the stored session observe the same object. No operation here ever
// fails: the cart is driven by user-controlled HTTP input that cannot be
// trusted to match current state, so unknown ids and options degrade to
// no-ops.
package cart

import (
	"storefront/internal/models"
	"storefront/pkg/money"
)

const fallbackCurrency = "CAD"

// New returns a freshly constructed empty cart for the given display
// currency.
func New(preferredCurrency string) *models.Cart {
	if preferredCurrency == "" {
		preferredCurrency = fallbackCurrency
	}
	return &models.Cart{
		Items:             []models.CartItem{},
		Total:             0,
		FormattedTotal:    money.Format(0, preferredCurrency),
		PreferredCurrency: preferredCurrency,
	}
}

// Add constructs a line item from the product and appends it to the cart.
// The same product may appear multiple times as independent line items,
// distinguished (or not) by option. An empty option is stored as nil.
func Add(product *models.Product, option string, c *models.Cart) {
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	var opt *string
	if option != "" {
		opt = &option
	}

	c.Items = append(c.Items, models.CartItem{
		ProductID:      product.ID,
		Name:           product.Name,
		Price:          product.Price,
		Image:          image,
		Option:         opt,
		FormattedPrice: money.Format(product.Price, currencyOf(c)),
	})
	Recompute(c)
}

// Remove deletes the first line item (in insertion order) whose id and
// option both match. When nothing matches, including on an empty cart, it
// is a silent no-op: removal requests may race with a cart that changed
// since the page was rendered.
func Remove(id, option string, c *models.Cart) {
	for i, item := range c.Items {
		if item.ProductID == id && optionMatches(item.Option, option) {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	Recompute(c)
}

// Recompute sets the cart total to the sum of the current items' prices
// and refreshes the formatted prices in the display currency. Idempotent.
func Recompute(c *models.Cart) {
	c.Total = 0
	for i := range c.Items {
		c.Total += c.Items[i].Price
		c.Items[i].FormattedPrice = money.Format(c.Items[i].Price, currencyOf(c))
	}
	c.FormattedTotal = money.Format(c.Total, currencyOf(c))
}

// Empty clears the items, resets the totals and discards any attached
// order. Used both for "reset" and as post-checkout cleanup.
func Empty(c *models.Cart) {
	c.Items = []models.CartItem{}
	c.Total = 0
	c.FormattedTotal = money.Format(0, currencyOf(c))
	c.Order = nil
}

// Purchase attaches the order to the cart verbatim. Validation is the
// order validator's job, invoked earlier in the checkout workflow. Items
// and totals are untouched.
func Purchase(order *models.Order, c *models.Cart) {
	c.Order = order
}

// Snapshot returns a deep copy of the cart, including its attached order,
// so a receipt can be rendered after the live session cart is emptied.
func Snapshot(c *models.Cart) *models.Cart {
	snap := *c
	snap.Items = append([]models.CartItem(nil), c.Items...)
	if c.Order != nil {
		order := *c.Order
		snap.Order = &order
	}
	return &snap
}

func currencyOf(c *models.Cart) string {
	if c.PreferredCurrency == "" {
		return fallbackCurrency
	}
	return c.PreferredCurrency
}

func optionMatches(stored *string, option string) bool {
	if stored == nil {
		return option == ""
	}
	return *stored == option
}
