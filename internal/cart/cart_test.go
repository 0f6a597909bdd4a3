package cart_test

import (
	"testing"

	"storefront/internal/cart"
	"storefront/internal/models"
	"storefront/pkg/money"

	"github.com/stretchr/testify/assert"
)

func testProduct() *models.Product {
	return &models.Product{
		ID:          "prod-1",
		Name:        "Men's Mining T",
		Description: "Get fired from your job for looking too cool in this sweet Mining King T",
		Price:       59.99,
		Images:      []string{"man-shirt.jpg", "man-shirt-back.jpg", "man-shirt-cu.jpg"},
		Options:     []string{"Small", "Medium", "Large"},
		Categories:  []string{"mens"},
	}
}

func TestNew(t *testing.T) {
	c := cart.New("CAD")

	assert.Empty(t, c.Items)
	assert.Equal(t, 0.0, c.Total)
	assert.Equal(t, "$0.00", c.FormattedTotal)
	assert.Equal(t, "CAD", c.PreferredCurrency)
	assert.Nil(t, c.Order)
}

func TestAdd(t *testing.T) {
	product := testProduct()

	t.Run("appends a line item to the cart", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "Large", c)
		assert.Len(t, c.Items, 1)
		assert.Equal(t, product.ID, c.Items[0].ProductID)
		assert.Equal(t, product.Name, c.Items[0].Name)
		assert.Equal(t, "man-shirt.jpg", c.Items[0].Image)
	})

	t.Run("calculates the total value of the cart", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "Large", c)
		assert.Equal(t, product.Price, c.Total)
	})

	t.Run("sets the formatted total value", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "Large", c)
		assert.Equal(t, money.Format(product.Price, "CAD"), c.FormattedTotal)
	})

	t.Run("stores a nil option when none is given", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "", c)
		assert.Len(t, c.Items, 1)
		assert.Nil(t, c.Items[0].Option)
	})

	t.Run("caches a formatted price on the line item", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "", c)
		assert.Equal(t, money.Format(product.Price, "CAD"), c.Items[0].FormattedPrice)
	})

	t.Run("keeps the total in step after every add", func(t *testing.T) {
		c := cart.New("CAD")
		for i := 1; i <= 5; i++ {
			cart.Add(product, "Large", c)
			var sum float64
			for _, item := range c.Items {
				sum += item.Price
			}
			assert.Equal(t, sum, c.Total)
			assert.Equal(t, money.Format(c.Total, "CAD"), c.FormattedTotal)
		}
	})

	t.Run("two items at 59.99 total 119.98", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "Large", c)
		cart.Add(product, "Small", c)
		assert.Equal(t, 119.98, c.Total)
		assert.Equal(t, "$119.98", c.FormattedTotal)
	})
}

func TestRemove(t *testing.T) {
	product := testProduct()

	t.Run("removes a matching line item", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "Large", c)
		cart.Remove(product.ID, "Large", c)
		assert.Empty(t, c.Items)
	})

	t.Run("recalculates the total", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "Large", c)
		assert.Equal(t, product.Price, c.Total)

		cart.Remove(product.ID, "Large", c)
		assert.Equal(t, 0.0, c.Total)
	})

	t.Run("resets the formatted total", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "Large", c)
		cart.Remove(product.ID, "Large", c)
		assert.Equal(t, "$0.00", c.FormattedTotal)
	})

	t.Run("does not remove an item when the option does not match", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "Large", c)
		cart.Remove(product.ID, "Small", c)
		assert.Len(t, c.Items, 1)
	})

	t.Run("removes only the first matching item in insertion order", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "Large", c)
		cart.Add(product, "Small", c)
		cart.Add(product, "Large", c)
		assert.Len(t, c.Items, 3)

		cart.Remove(product.ID, "Large", c)
		assert.Len(t, c.Items, 2)
		assert.Equal(t, "Small", *c.Items[0].Option)
		assert.Equal(t, "Large", *c.Items[1].Option)
	})

	t.Run("is a no-op for an unknown product id", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "Large", c)
		cart.Remove("nosuchid", "Large", c)
		assert.Len(t, c.Items, 1)
	})

	t.Run("is a no-op on an empty cart", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Remove(product.ID, "Large", c)
		assert.Empty(t, c.Items)
		assert.Equal(t, 0.0, c.Total)
	})
}

func TestRecompute(t *testing.T) {
	product := testProduct()

	t.Run("calculates and sets the total", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Recompute(c)
		assert.Equal(t, 0.0, c.Total)

		cart.Add(product, "Large", c)
		cart.Recompute(c)
		assert.Equal(t, product.Price, c.Total)

		cart.Add(product, "Large", c)
		cart.Recompute(c)
		assert.Equal(t, product.Price*2, c.Total)
	})

	t.Run("sets the formatted total", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "Large", c)
		cart.Recompute(c)
		assert.Equal(t, money.Format(product.Price, "CAD"), c.FormattedTotal)
	})

	t.Run("is idempotent", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "Large", c)
		cart.Recompute(c)
		total, formatted := c.Total, c.FormattedTotal
		cart.Recompute(c)
		assert.Equal(t, total, c.Total)
		assert.Equal(t, formatted, c.FormattedTotal)
	})
}

func TestEmpty(t *testing.T) {
	product := testProduct()

	t.Run("empties the cart and resets all the values", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Add(product, "Large", c)
		cart.Add(product, "Small", c)
		cart.Add(product, "Large", c)
		assert.Len(t, c.Items, 3)

		cart.Empty(c)
		assert.Empty(t, c.Items)
		assert.Equal(t, 0.0, c.Total)
		assert.Equal(t, "$0.00", c.FormattedTotal)
	})

	t.Run("discards the attached order", func(t *testing.T) {
		c := cart.New("CAD")
		cart.Purchase(&models.Order{Transaction: "0x50m3crazy1d"}, c)
		cart.Empty(c)
		assert.Nil(t, c.Order)
	})
}

func TestPurchase(t *testing.T) {
	c := cart.New("CAD")
	order := &models.Order{
		Transaction: "0x50m3crazy1d",
		Recipient:   "Anonymous",
		Street:      "123 Fake Street",
		City:        "The C-Spot",
		Province:    "AB",
		Country:     "No thanks",
		Postcode:    "T1K-5B3",
		Contact:     "1",
		Email:       "me@example.com",
	}

	cart.Purchase(order, c)

	assert.Equal(t, order, c.Order)
	assert.Equal(t, "0x50m3crazy1d", c.Order.Transaction)
	assert.Equal(t, "Anonymous", c.Order.Recipient)
	assert.Equal(t, "me@example.com", c.Order.Email)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0.0, c.Total)
}

func TestSnapshot(t *testing.T) {
	product := testProduct()
	c := cart.New("CAD")
	cart.Add(product, "Large", c)
	cart.Purchase(&models.Order{Recipient: "Anonymous", Transaction: "0x1"}, c)

	snap := cart.Snapshot(c)
	cart.Empty(c)

	assert.Len(t, snap.Items, 1)
	assert.NotNil(t, snap.Order)
	assert.Equal(t, "Anonymous", snap.Order.Recipient)
	assert.Empty(t, c.Items)
	assert.Nil(t, c.Order)
}
