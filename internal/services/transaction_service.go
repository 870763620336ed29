package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "opsdeck/internal/errors"
	"opsdeck/internal/models"
	"opsdeck/internal/notify"
	"opsdeck/internal/querycache"
)

// transactionService handles the income/expense ledger.
type transactionService struct {
	db       *gorm.DB
	cache    *querycache.Cache
	notifier notify.Notifier
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, cache *querycache.Cache, notifier notify.Notifier) TransactionServicer {
	return &transactionService{db: db, cache: cache, notifier: notifier}
}

// CreateTransaction validates and inserts a ledger entry. The amount
// is always stored non-negative; direction is carried by the type.
func (s *transactionService) CreateTransaction(userID uint, txType models.TransactionType, amount float64, category, description, date string) (*models.Transaction, error) {
	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category is required")
	}
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, apperrors.ErrInvalidDate
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		s.notifier.Error(userID, "Failed to add transaction")
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TableTransactions, userID)
	s.notifier.Success(userID, "Transaction added")
	return transaction, nil
}

// GetUserTransactions returns the user's ledger, newest first, through
// the query cache.
func (s *transactionService) GetUserTransactions(ctx context.Context, userID uint) ([]models.Transaction, error) {
	key := querycache.Key(querycache.KeyTransactions, userID)
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]models.Transaction, error) {
		var transactions []models.Transaction
		if err := s.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("date DESC, id DESC").
			Find(&transactions).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return transactions, nil
	})
}

// DeleteTransaction removes a ledger entry. Deleting an id that is
// already gone reports TRANSACTION_NOT_FOUND and leaves every cache
// entry untouched.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTransactionNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&transaction).Error; err != nil {
		s.notifier.Error(userID, "Failed to delete transaction")
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.InvalidateEntity(querycache.TableTransactions, userID)
	s.notifier.Success(userID, "Transaction deleted")
	return nil
}
