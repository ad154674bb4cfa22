package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FullName  string `gorm:"not null" json:"full_name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Role      string `gorm:"type:varchar(50);default:user;not null" json:"role"`
	Password  string `gorm:"not null" json:"-"` // stored as bcrypt hash
	Blocked   bool   `json:"blocked" gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Bookings  []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`
}

type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	City      string    `gorm:"size:100" json:"city"`
	Address   string    `gorm:"size:300" json:"address,omitempty"`
	Vehicles  []Vehicle `gorm:"foreignKey:LocationID" json:"vehicles,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Vehicle struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Make        string         `gorm:"size:100;not null" json:"make"`
	Model       string         `gorm:"size:100;not null" json:"model"`
	Year        int            `json:"year"`
	Category    string         `gorm:"size:50;index" json:"category"` // e.g., "sedan","suv","luxury"
	PricePerDay float64        `gorm:"type:decimal(10,2)" json:"price_per_day"`
	Mileage     float64        `json:"mileage"` // odometer, km
	Status      string         `gorm:"size:30;default:'available';index" json:"status"` // "available","rented","maintenance"
	ImageURL    string         `json:"image_url,omitempty"`
	LocationID  uint           `gorm:"index" json:"location_id"`
	Location    Location       `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Booking struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	VehicleID uint    `gorm:"index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`

	PickupLocationID  uint `gorm:"index" json:"pickup_location_id"`
	DropoffLocationID uint `gorm:"index" json:"dropoff_location_id"`

	Reference     string    `gorm:"size:64;uniqueIndex" json:"reference"`
	StartDate     time.Time `gorm:"not null" json:"start_date"`
	EndDate       time.Time `gorm:"not null" json:"end_date"`
	Days          int       `json:"days"`
	TotalAmount   float64   `gorm:"type:decimal(10,2)" json:"total_amount"`
	Status        string    `gorm:"type:varchar(20);default:'pending';index" json:"status"` // "pending", "confirmed", "cancelled"
	PaymentStatus string    `gorm:"size:20;default:'unpaid'" json:"payment_status"`         // "unpaid", "paid"

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	StatusHistory []BookingStatusEvent `gorm:"foreignKey:BookingID" json:"status_history,omitempty"`
	Payment       *Payment             `gorm:"foreignKey:BookingID" json:"payment,omitempty"`
}

type BookingStatusEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookingID uint      `gorm:"index;not null" json:"booking_id"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	Note      string    `gorm:"size:300" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
