package repository

import (
	"context"
	"errors"

	"carrental/models"

	"gorm.io/gorm"
)

type BookingRepository struct {
	DB *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

func (r *BookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	err := r.DB.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// MarkPaid flips the booking to paid/confirmed and appends one history entry.
func (r *BookingRepository) MarkPaid(ctx context.Context, b *models.Booking, note string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b.PaymentStatus = "paid"
		b.Status = "confirmed"
		if err := tx.Save(b).Error; err != nil {
			return err
		}

		event := models.BookingStatusEvent{
			BookingID: b.ID,
			Status:    "confirmed",
			Note:      note,
		}
		return tx.Create(&event).Error
	})
}
