package repository

import (
	"context"
	"errors"

	"carrental/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("record not found")

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// FindByPaymentID looks a payment up by the processor-assigned order id.
func (r *PaymentRepository) FindByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	var p models.Payment
	err := r.DB.WithContext(ctx).Where("payment_id = ?", paymentID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment) error {
	return r.DB.WithContext(ctx).Save(p).Error
}
