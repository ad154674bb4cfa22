package models

import "time"

type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "CREATED"
	PaymentStatusApproved  PaymentStatus = "APPROVED"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// Terminal reports whether no further status transition is defined; the
// status machine only ever moves forward.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed || s == PaymentStatusCancelled
}

const (
	ProviderPayPal     = "paypal"
	ProviderStripe     = "stripe"
	ProviderCreditCard = "credit_card"
)

// Payment is one processor-side order and its observed outcome.
// PaymentID is assigned by the processor at order creation and never changes.
type Payment struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	PaymentID   string        `gorm:"size:64;uniqueIndex;not null" json:"payment_id"`
	BookingID   uint          `gorm:"index;not null" json:"booking_id"`
	Amount      float64       `gorm:"type:decimal(10,2)" json:"amount"`
	Currency    string        `gorm:"size:8;default:'USD'" json:"currency"`
	Status      PaymentStatus `gorm:"size:32;default:'CREATED';index" json:"status"`
	Provider    string        `gorm:"size:32;default:'paypal'" json:"provider"`
	PayerID     string        `gorm:"size:64" json:"payer_id,omitempty"`
	Details     string        `gorm:"type:jsonb;default:'{}'" json:"details,omitempty"` // capture id, payer contact
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// PaymentDetails is the shape marshalled into Payment.Details at capture time.
type PaymentDetails struct {
	CaptureID      string `json:"capture_id,omitempty"`
	PayerEmail     string `json:"payer_email,omitempty"`
	PayerFirstName string `json:"payer_first_name,omitempty"`
	PayerLastName  string `json:"payer_last_name,omitempty"`
}
