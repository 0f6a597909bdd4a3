package repositories

import (
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMWalletRepository is a GORM implementation of WalletRepository.
type GORMWalletRepository struct {
	db *gorm.DB
}

// NewGORMWalletRepository creates a new instance of GORMWalletRepository.
func NewGORMWalletRepository(db *gorm.DB) *GORMWalletRepository {
	return &GORMWalletRepository{
		db: db,
	}
}

// GetAll retrieves all wallets from the database.
func (r *GORMWalletRepository) GetAll() ([]models.Wallet, error) {
	var wallets []models.Wallet
	if err := r.db.Order("currency").Find(&wallets).Error; err != nil {
		return nil, fmt.Errorf("failed to get all wallets: %w", err)
	}
	return wallets, nil
}

// GetByCurrency retrieves the wallet for a currency code. It returns
// ErrWalletNotFound when no wallet is configured for that currency.
func (r *GORMWalletRepository) GetByCurrency(currency string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.First(&wallet, "currency = ?", currency).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no wallet for currency %s: %w", currency, ErrWalletNotFound)
		}
		return nil, fmt.Errorf("failed to get wallet for currency %s: %w", currency, err)
	}
	return &wallet, nil
}

// Create creates a new wallet in the database.
func (r *GORMWalletRepository) Create(wallet *models.Wallet) error {
	if wallet.ID == "" {
		wallet.ID = uuid.New().String()
	}
	if err := r.db.Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// Update updates an existing wallet in the database.
func (r *GORMWalletRepository) Update(wallet *models.Wallet) error {
	res := r.db.Save(wallet)
	if res.Error != nil {
		return fmt.Errorf("failed to update wallet with ID %s: %w", wallet.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wallet with ID %s not found for update", wallet.ID)
	}
	return nil
}

// Delete deletes a wallet by its ID from the database.
func (r *GORMWalletRepository) Delete(id string) error {
	res := r.db.Delete(&models.Wallet{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete wallet with ID %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wallet with ID %s not found for deletion", id)
	}
	return nil
}
