package service

import (
	"context"
	"errors"

	"github.com/ecotrade/marketplace/internal/model"
	"github.com/ecotrade/marketplace/internal/repository"
	"gorm.io/gorm"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type TransactionInput struct {
	PostID          uint64
	Quantity        float64
	PaymentMethod   string
	ShippingAddress string
}

type TransactionService interface {
	Create(ctx context.Context, buyerID uint64, in TransactionInput) (*model.Transaction, error)
	ListBySeller(ctx context.Context, sellerID, callerID uint64) ([]model.TransactionDetail, error)
	ListByBuyer(ctx context.Context, buyerID, callerID uint64) ([]model.TransactionDetail, error)
	UpdateStatus(ctx context.Context, txID, callerID uint64, status model.TransactionStatus) (*model.Transaction, error)
	Delete(ctx context.Context, txID, callerID uint64) error
}

type transactionService struct {
	txRepo   repository.TransactionRepository
	postRepo repository.PostRepository
}

func NewTransactionService(txRepo repository.TransactionRepository, postRepo repository.PostRepository) TransactionService {
	return &transactionService{txRepo: txRepo, postRepo: postRepo}
}

func (s *transactionService) Create(ctx context.Context, buyerID uint64, in TransactionInput) (*model.Transaction, error) {
	if in.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	post, err := s.postRepo.FindByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.UserID == buyerID {
		return nil, errors.New("cannot buy your own post")
	}

	tx := &model.Transaction{
		BuyerID:  buyerID,
		SellerID: post.UserID,
		PostID:   post.ID,
		Quantity: in.Quantity,
		// unit is a snapshot of the post at order time
		Unit: post.Unit,
		// the total is never trusted from the client
		TotalPrice:      in.Quantity * post.Price,
		PaymentMethod:   in.PaymentMethod,
		ShippingAddress: in.ShippingAddress,
		Status:          model.TransactionStatusPending,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) ListBySeller(ctx context.Context, sellerID, callerID uint64) ([]model.TransactionDetail, error) {
	if sellerID != callerID {
		return nil, ErrForbidden
	}
	return s.txRepo.ListBySeller(ctx, sellerID)
}

func (s *transactionService) ListByBuyer(ctx context.Context, buyerID, callerID uint64) ([]model.TransactionDetail, error) {
	if buyerID != callerID {
		return nil, ErrForbidden
	}
	return s.txRepo.ListByBuyer(ctx, buyerID)
}

// UpdateStatus is the seller's accept/reject action. Only pending orders
// move, and only to approved or rejected.
func (s *transactionService) UpdateStatus(ctx context.Context, txID, callerID uint64, status model.TransactionStatus) (*model.Transaction, error) {
	if status != model.TransactionStatusApproved && status != model.TransactionStatusRejected {
		return nil, ErrInvalidTransition
	}
	tx, err := s.txRepo.FindByID(ctx, txID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if tx.SellerID != callerID {
		return nil, ErrForbidden
	}
	if !tx.Status.CanTransition(status) {
		return nil, ErrInvalidTransition
	}
	if err := s.txRepo.UpdateStatus(ctx, txID, status); err != nil {
		return nil, err
	}
	tx.Status = status
	return tx, nil
}

// Delete is the buyer's cancel action; shipped-state orders stay put since
// only pending orders can be withdrawn.
func (s *transactionService) Delete(ctx context.Context, txID, callerID uint64) error {
	tx, err := s.txRepo.FindByID(ctx, txID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if tx.BuyerID != callerID {
		return ErrForbidden
	}
	if tx.Status != model.TransactionStatusPending {
		return ErrInvalidTransition
	}
	return s.txRepo.Delete(ctx, txID)
}
