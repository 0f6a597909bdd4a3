package models

// CartItem is one purchased line in a cart. Items are created by the cart
// engine when a product is added and are never mutated in place.
type CartItem struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Image          string  `json:"image"`
	Option         *string `json:"option"`
	FormattedPrice string  `json:"formatted_price"`
}

// Order holds the buyer-submitted checkout details. A non-empty Transaction
// reference marks the order as paid; otherwise payment is awaited out-of-band.
type Order struct {
	Recipient   string `json:"recipient" form:"recipient" validate:"required"`
	Street      string `json:"street" form:"street" validate:"required"`
	City        string `json:"city" form:"city" validate:"required"`
	Province    string `json:"province" form:"province" validate:"required"`
	Country     string `json:"country" form:"country" validate:"required"`
	Postcode    string `json:"postcode" form:"postcode" validate:"required"`
	Contact     string `json:"contact" form:"contact"`
	Email       string `json:"email" form:"email" validate:"omitempty,email"`
	Transaction string `json:"transaction" form:"transaction"`
}

// Cart is the session-scoped aggregate: ordered line items, derived totals
// and an optional finalized order. It lives inside the web session and is
// mutated in place by the cart engine.
type Cart struct {
	Items             []CartItem `json:"items"`
	Total             float64    `json:"total"`
	FormattedTotal    string     `json:"formatted_total"`
	PreferredCurrency string     `json:"preferred_currency"`
	Order             *Order     `json:"order,omitempty"`
}
