package repositories

import (
	"errors"

	"storefront/internal/models"
)

// ErrWalletNotFound signals that no wallet exists for a currency. Lookups
// return it explicitly so callers can tell "no match" apart from a match
// on the first record.
var ErrWalletNotFound = errors.New("wallet not found")

// WalletRepository defines the interface for wallet/currency data access.
type WalletRepository interface {
	GetAll() ([]models.Wallet, error)
	GetByCurrency(currency string) (*models.Wallet, error)
	Create(wallet *models.Wallet) error
	Update(wallet *models.Wallet) error
	Delete(id string) error
}
