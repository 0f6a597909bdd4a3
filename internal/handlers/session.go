package handlers

import (
	"encoding/json"
	"log"

	"storefront/internal/cart"
	"storefront/internal/models"

	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	cartSessionKey  = "cart"
	flashSessionKey = "flash"
)

// Flash is a one-shot notice carried across a redirect. Level is one of
// "success", "info" or "error".
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// cartFromSession loads the session cart, creating a fresh one on first
// visit or when the stored payload cannot be decoded.
func cartFromSession(sess *session.Session, preferredCurrency string) *models.Cart {
	raw, ok := sess.Get(cartSessionKey).(string)
	if !ok || raw == "" {
		return cart.New(preferredCurrency)
	}
	var c models.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		log.Printf("Discarding undecodable session cart: %v", err)
		return cart.New(preferredCurrency)
	}
	return &c
}

// putCart serializes the cart back into the session. The session is not
// persisted until Save is called.
func putCart(sess *session.Session, c *models.Cart) {
	b, err := json.Marshal(c)
	if err != nil {
		log.Printf("Failed to marshal session cart: %v", err)
		return
	}
	sess.Set(cartSessionKey, string(b))
}

// addFlash queues a notice for the next rendered page.
func addFlash(sess *session.Session, level, message string) {
	flashes := peekFlashes(sess)
	flashes = append(flashes, Flash{Level: level, Message: message})
	b, err := json.Marshal(flashes)
	if err != nil {
		log.Printf("Failed to marshal flash messages: %v", err)
		return
	}
	sess.Set(flashSessionKey, string(b))
}

// consumeFlashes returns the queued notices and clears them.
func consumeFlashes(sess *session.Session) []Flash {
	flashes := peekFlashes(sess)
	sess.Delete(flashSessionKey)
	return flashes
}

func peekFlashes(sess *session.Session) []Flash {
	raw, ok := sess.Get(flashSessionKey).(string)
	if !ok || raw == "" {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal([]byte(raw), &flashes); err != nil {
		return nil
	}
	return flashes
}
