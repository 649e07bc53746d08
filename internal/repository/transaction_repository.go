package repository

import (
	"context"

	"github.com/ecotrade/marketplace/internal/model"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	FindByID(ctx context.Context, id uint64) (*model.Transaction, error)
	ListBySeller(ctx context.Context, sellerID uint64) ([]model.TransactionDetail, error)
	ListByBuyer(ctx context.Context, buyerID uint64) ([]model.TransactionDetail, error)
	UpdateStatus(ctx context.Context, id uint64, status model.TransactionStatus) error
	Delete(ctx context.Context, id uint64) error
	SetDB(db *gorm.DB)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *transactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint64) (*model.Transaction, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var tx model.Transaction
	if err := r.db.WithContext(ctx).First(&tx, id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("transactions").
		Select(`transactions.*,
			buyers.name AS buyer_name, buyers.email AS buyer_email, buyers.mobile_no AS buyer_phone,
			sellers.name AS seller_name, sellers.email AS seller_email, sellers.mobile_no AS seller_phone,
			posts.material_id, materials.material_name, materials.material_category,
			chats.id AS chat_id`).
		Joins("JOIN users buyers ON transactions.buyer_id = buyers.id").
		Joins("JOIN users sellers ON transactions.seller_id = sellers.id").
		Joins("JOIN posts ON transactions.post_id = posts.id").
		Joins("JOIN materials ON posts.material_id = materials.id").
		Joins(`LEFT JOIN chats ON chats.post_id = transactions.post_id
			AND chats.buyer_id = transactions.buyer_id
			AND chats.seller_id = transactions.seller_id`)
}

func (r *transactionRepository) ListBySeller(ctx context.Context, sellerID uint64) ([]model.TransactionDetail, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.TransactionDetail
	if err := r.detailQuery(ctx).
		Where("transactions.seller_id = ?", sellerID).
		Order("transactions.created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *transactionRepository) ListByBuyer(ctx context.Context, buyerID uint64) ([]model.TransactionDetail, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.TransactionDetail
	if err := r.detailQuery(ctx).
		Where("transactions.buyer_id = ?", buyerID).
		Order("transactions.created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id uint64, status model.TransactionStatus) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ?", id).
		Update("order_status", status).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Delete(&model.Transaction{}, id).Error
}
