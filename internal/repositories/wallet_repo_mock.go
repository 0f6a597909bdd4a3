package repositories

import (
	"fmt"
	"sort"
	"sync"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockWalletRepository is an in-memory implementation of WalletRepository.
type MockWalletRepository struct {
	wallets map[string]models.Wallet
	mu      sync.RWMutex
}

// NewMockWalletRepository creates a new instance of MockWalletRepository.
func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		wallets: make(map[string]models.Wallet),
	}
}

// GetAll returns all wallets, ordered by currency code.
func (r *MockWalletRepository) GetAll() ([]models.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	walletList := make([]models.Wallet, 0, len(r.wallets))
	for _, w := range r.wallets {
		walletList = append(walletList, w)
	}
	sort.Slice(walletList, func(i, j int) bool {
		return walletList[i].Currency < walletList[j].Currency
	})
	return walletList, nil
}

// GetByCurrency returns the wallet for a currency code, or
// ErrWalletNotFound when none is configured.
func (r *MockWalletRepository) GetByCurrency(currency string) (*models.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.wallets {
		if w.Currency == currency {
			wallet := w
			return &wallet, nil
		}
	}
	return nil, fmt.Errorf("no wallet for currency %s: %w", currency, ErrWalletNotFound)
}

// Create adds a new wallet.
func (r *MockWalletRepository) Create(wallet *models.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if wallet.ID == "" {
		wallet.ID = uuid.New().String()
	}
	r.wallets[wallet.ID] = *wallet
	return nil
}

// Update modifies an existing wallet.
func (r *MockWalletRepository) Update(wallet *models.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.wallets[wallet.ID]
	if !ok {
		return fmt.Errorf("wallet with ID %s not found for update", wallet.ID)
	}
	r.wallets[wallet.ID] = *wallet
	return nil
}

// Delete removes a wallet by its ID.
func (r *MockWalletRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.wallets[id]
	if !ok {
		return fmt.Errorf("wallet with ID %s not found for deletion", id)
	}
	delete(r.wallets, id)
	return nil
}
