package services_test

import (
	"fmt"
	"testing"

	"storefront/internal/cart"
	"storefront/internal/mailer"
	"storefront/internal/models"
	"storefront/internal/render"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRenderer is a mock implementation of services.Renderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderText(name string, data any) (string, error) {
	args := m.Called(name, data)
	return args.String(0), args.Error(1)
}

func (m *MockRenderer) RenderHTML(name string, data any) (string, error) {
	args := m.Called(name, data)
	return args.String(0), args.Error(1)
}

// MockInliner is a mock implementation of services.CSSInliner
type MockInliner struct {
	mock.Mock
}

func (m *MockInliner) Inline(html string) (string, error) {
	args := m.Called(html)
	return args.String(0), args.Error(1)
}

// MockCodeGenerator is a mock implementation of services.CodeGenerator
type MockCodeGenerator struct {
	mock.Mock
}

func (m *MockCodeGenerator) PNG(payload string) ([]byte, error) {
	args := m.Called(payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCodeGenerator) DataURI(payload string) (string, error) {
	args := m.Called(payload)
	return args.String(0), args.Error(1)
}

// MockMailer is a mock implementation of mailer.Mailer that records every
// message it was asked to send.
type MockMailer struct {
	mock.Mock
	Sent []*mailer.Message
}

func (m *MockMailer) Send(msg *mailer.Message) error {
	args := m.Called(msg)
	if args.Error(0) == nil {
		m.Sent = append(m.Sent, msg)
	}
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

type checkoutFixture struct {
	wallets  *repositories.MockWalletRepository
	renderer *MockRenderer
	inliner  *MockInliner
	codes    *MockCodeGenerator
	mail     *MockMailer
	events   *MockEventPublisher
	service  *services.CheckoutService
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		wallets:  repositories.NewMockWalletRepository(),
		renderer: new(MockRenderer),
		inliner:  new(MockInliner),
		codes:    new(MockCodeGenerator),
		mail:     new(MockMailer),
		events:   new(MockEventPublisher),
	}
	f.service = services.NewCheckoutService(
		f.wallets, f.renderer, f.inliner, f.codes, f.mail, f.events,
		services.CheckoutConfig{
			VendorAddress:   "vendor@example.com",
			ProductImageDir: "public/images/products",
		},
	)
	return f
}

func (f *checkoutFixture) seedWallet(t *testing.T) {
	t.Helper()
	assert.NoError(t, f.wallets.Create(&models.Wallet{Currency: "CAD", Address: "0xdeadbeef"}))
}

func checkoutCart() *models.Cart {
	c := cart.New("CAD")
	cart.Add(&models.Product{ID: "prod-1", Name: "Men's Mining T", Price: 59.99, Images: []string{"man-shirt.jpg"}}, "Large", c)
	return c
}

func checkoutOrder() *models.Order {
	return &models.Order{
		Recipient: "Anonymous",
		Street:    "123 Fake St",
		City:      "The C-Spot",
		Province:  "AB",
		Country:   "Canada",
		Postcode:  "T1K-5B3",
		Email:     "me@example.com",
	}
}

func TestCheckoutValidationFailure(t *testing.T) {
	f := newCheckoutFixture()
	c := checkoutCart()
	order := checkoutOrder()
	order.Recipient = ""

	result, err := f.service.Checkout(c, order)

	assert.NoError(t, err)
	assert.Len(t, result.FieldErrors, 1)
	assert.Equal(t, "recipient", result.FieldErrors[0].Field)
	assert.Nil(t, c.Order, "cart must be untouched after a validation failure")
	assert.Len(t, c.Items, 1)
	f.mail.AssertNotCalled(t, "Send", mock.Anything)
}

func TestCheckoutUnpaidWithEmail(t *testing.T) {
	f := newCheckoutFixture()
	c := checkoutCart()
	order := checkoutOrder()

	f.seedWallet(t)
	f.renderer.On("RenderText", render.VendorUnpaidText, mock.Anything).Return("vendor text", nil).Once()
	f.renderer.On("RenderHTML", render.VendorUnpaidHTML, mock.Anything).Return("<p>vendor</p>", nil).Once()
	f.renderer.On("RenderText", render.BuyerUnpaidText, mock.Anything).Return("buyer text", nil).Once()
	f.renderer.On("RenderHTML", render.BuyerUnpaidHTML, mock.Anything).Return("<p>buyer</p>", nil).Once()
	f.inliner.On("Inline", mock.Anything).Return("<p>inlined</p>", nil).Twice()
	f.codes.On("PNG", "0xdeadbeef").Return([]byte{0x89}, nil).Once()
	f.mail.On("Send", mock.Anything).Return(nil).Twice()
	f.events.On("Publish", "order", "order.received", mock.Anything).Return(nil).Once()

	result, err := f.service.Checkout(c, order)

	assert.NoError(t, err)
	assert.Empty(t, result.FieldErrors)
	assert.False(t, result.Paid)
	assert.Equal(t, "/", result.RedirectTo)
	assert.Contains(t, result.Notice, "me@example.com")

	// Unpaid track: the cart is emptied once both notifications went out.
	assert.Empty(t, c.Items)
	assert.Nil(t, c.Order)

	assert.Len(t, f.mail.Sent, 2)
	assert.Equal(t, "vendor@example.com", f.mail.Sent[0].To)
	assert.Equal(t, "New order received - unpaid", f.mail.Sent[0].Subject)
	assert.Equal(t, "me@example.com", f.mail.Sent[1].To)
	assert.Equal(t, "Order received - payment instructions", f.mail.Sent[1].Subject)

	f.renderer.AssertExpectations(t)
	f.inliner.AssertExpectations(t)
	f.codes.AssertExpectations(t)
	f.mail.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestCheckoutPaidWithEmail(t *testing.T) {
	f := newCheckoutFixture()
	c := checkoutCart()
	order := checkoutOrder()
	order.Transaction = "0x50m3crazy1d"

	f.seedWallet(t)
	f.renderer.On("RenderText", render.VendorPaidText, mock.Anything).Return("vendor text", nil).Once()
	f.renderer.On("RenderHTML", render.VendorPaidHTML, mock.Anything).Return("<p>vendor</p>", nil).Once()
	f.renderer.On("RenderText", render.BuyerPaidText, mock.Anything).Return("buyer text", nil).Once()
	f.renderer.On("RenderHTML", render.BuyerPaidHTML, mock.Anything).Return("<p>buyer</p>", nil).Once()
	f.inliner.On("Inline", mock.Anything).Return("<p>inlined</p>", nil).Twice()
	// Paid track: the code image encodes the transaction, not the wallet.
	f.codes.On("PNG", "0x50m3crazy1d").Return([]byte{0x89}, nil).Once()
	f.mail.On("Send", mock.Anything).Return(nil).Twice()
	f.events.On("Publish", "order", "order.received", mock.Anything).Return(nil).Once()

	result, err := f.service.Checkout(c, order)

	assert.NoError(t, err)
	assert.True(t, result.Paid)
	assert.Equal(t, "/cart/receipt", result.RedirectTo)

	// Paid track: the cart survives for the receipt render.
	assert.Len(t, c.Items, 1)
	assert.NotNil(t, c.Order)
	assert.Equal(t, "0x50m3crazy1d", c.Order.Transaction)

	assert.Equal(t, "New order received", f.mail.Sent[0].Subject)
	assert.Equal(t, "Order received - here is your receipt", f.mail.Sent[1].Subject)

	f.mail.AssertExpectations(t)
	f.codes.AssertExpectations(t)
}

func TestCheckoutWithoutBuyerEmail(t *testing.T) {
	f := newCheckoutFixture()
	c := checkoutCart()
	order := checkoutOrder()
	order.Email = ""

	f.seedWallet(t)
	f.renderer.On("RenderText", render.VendorUnpaidText, mock.Anything).Return("vendor text", nil).Once()
	f.renderer.On("RenderHTML", render.VendorUnpaidHTML, mock.Anything).Return("<p>vendor</p>", nil).Once()
	f.inliner.On("Inline", mock.Anything).Return("<p>inlined</p>", nil).Once()
	f.codes.On("PNG", "0xdeadbeef").Return([]byte{0x89}, nil).Once()
	f.mail.On("Send", mock.Anything).Return(nil).Once()
	f.events.On("Publish", "order", "order.received", mock.Anything).Return(nil).Once()

	result, err := f.service.Checkout(c, order)

	assert.NoError(t, err)
	assert.Equal(t, "/cart/receipt", result.RedirectTo)
	assert.Contains(t, result.Notice, "Print this receipt")

	// Only the vendor notification goes out; the sender falls back to
	// the vendor address.
	assert.Len(t, f.mail.Sent, 1)
	assert.Equal(t, "vendor@example.com", f.mail.Sent[0].From)

	// No email round-trip to await, so the cart stays for the receipt.
	assert.Len(t, c.Items, 1)
	assert.NotNil(t, c.Order)

	f.renderer.AssertExpectations(t)
	f.mail.AssertExpectations(t)
}

func TestCheckoutAttachmentDeduplication(t *testing.T) {
	f := newCheckoutFixture()
	c := cart.New("CAD")
	shirt := &models.Product{ID: "prod-1", Name: "Men's Mining T", Price: 59.99, Images: []string{"man-shirt.jpg"}}
	cart.Add(shirt, "Large", c)
	cart.Add(shirt, "Small", c)
	order := checkoutOrder()
	order.Email = ""

	f.seedWallet(t)
	f.renderer.On("RenderText", mock.Anything, mock.Anything).Return("text", nil)
	f.renderer.On("RenderHTML", mock.Anything, mock.Anything).Return("<p>html</p>", nil)
	f.inliner.On("Inline", mock.Anything).Return("<p>inlined</p>", nil)
	f.codes.On("PNG", mock.Anything).Return([]byte{0x89}, nil)
	f.mail.On("Send", mock.Anything).Return(nil)
	f.events.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.Checkout(c, order)
	assert.NoError(t, err)

	// Two line items share one image: one image attachment plus the
	// generated code image.
	assert.Len(t, f.mail.Sent[0].Attachments, 2)
	assert.Equal(t, "man-shirt.jpg", f.mail.Sent[0].Attachments[0].ContentID)
	assert.Equal(t, "qr.png", f.mail.Sent[0].Attachments[1].ContentID)
}

func TestCheckoutWalletNotFound(t *testing.T) {
	f := newCheckoutFixture()
	c := checkoutCart()

	// No wallet seeded for the cart's currency.
	_, err := f.service.Checkout(c, checkoutOrder())

	assert.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrWalletNotFound)
	f.mail.AssertNotCalled(t, "Send", mock.Anything)
}

func TestCheckoutVendorMailFailure(t *testing.T) {
	f := newCheckoutFixture()
	c := checkoutCart()

	f.seedWallet(t)
	f.renderer.On("RenderText", mock.Anything, mock.Anything).Return("text", nil)
	f.renderer.On("RenderHTML", mock.Anything, mock.Anything).Return("<p>html</p>", nil)
	f.inliner.On("Inline", mock.Anything).Return("<p>inlined</p>", nil)
	f.codes.On("PNG", mock.Anything).Return([]byte{0x89}, nil)
	f.mail.On("Send", mock.Anything).Return(fmt.Errorf("smtp connection refused")).Once()

	_, err := f.service.Checkout(c, checkoutOrder())

	assert.Error(t, err)
	// The order stays attached and the cart un-emptied, so the buyer
	// sees an error rather than a false success.
	assert.Len(t, c.Items, 1)
	assert.NotNil(t, c.Order)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutBuyerMailFailureKeepsCart(t *testing.T) {
	f := newCheckoutFixture()
	c := checkoutCart()

	f.seedWallet(t)
	f.renderer.On("RenderText", mock.Anything, mock.Anything).Return("text", nil)
	f.renderer.On("RenderHTML", mock.Anything, mock.Anything).Return("<p>html</p>", nil)
	f.inliner.On("Inline", mock.Anything).Return("<p>inlined</p>", nil)
	f.codes.On("PNG", mock.Anything).Return([]byte{0x89}, nil)
	f.mail.On("Send", mock.Anything).Return(nil).Once()
	f.mail.On("Send", mock.Anything).Return(fmt.Errorf("smtp timeout")).Once()

	_, err := f.service.Checkout(c, checkoutOrder())

	assert.Error(t, err)
	assert.Len(t, f.mail.Sent, 1, "vendor notification went out before the buyer dispatch failed")
	assert.Len(t, c.Items, 1)
	assert.NotNil(t, c.Order)
}

func TestCheckoutPublisherFailureIsNotTerminal(t *testing.T) {
	f := newCheckoutFixture()
	c := checkoutCart()
	order := checkoutOrder()
	order.Email = ""

	f.seedWallet(t)
	f.renderer.On("RenderText", mock.Anything, mock.Anything).Return("text", nil)
	f.renderer.On("RenderHTML", mock.Anything, mock.Anything).Return("<p>html</p>", nil)
	f.inliner.On("Inline", mock.Anything).Return("<p>inlined</p>", nil)
	f.codes.On("PNG", mock.Anything).Return([]byte{0x89}, nil)
	f.mail.On("Send", mock.Anything).Return(nil)
	f.events.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(fmt.Errorf("broker down")).Once()

	result, err := f.service.Checkout(c, order)

	assert.NoError(t, err, "a broker failure must not fail the checkout")
	assert.Equal(t, "/cart/receipt", result.RedirectTo)
}
