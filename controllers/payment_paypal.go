package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"carrental/gateway/paypal"
	"carrental/models"
	"carrental/monitoring"
	"carrental/repository"

	"github.com/gin-gonic/gin"
)

// PaymentGateway is the slice of the PayPal client the controller drives.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req paypal.CreateOrderRequest) (*paypal.OrderResult, error)
	CaptureOrder(ctx context.Context, orderID string) (*paypal.CaptureResult, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	FindByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error)
	Update(ctx context.Context, p *models.Payment) error
}

type BookingStore interface {
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	MarkPaid(ctx context.Context, b *models.Booking, note string) error
}

type PayPalController struct {
	Gateway     PaymentGateway
	Payments    PaymentStore
	Bookings    BookingStore
	BaseURL     string
	FrontendURL string
}

func NewPayPalController(gateway PaymentGateway, payments PaymentStore, bookings BookingStore, baseURL, frontendURL string) *PayPalController {
	return &PayPalController{
		Gateway:     gateway,
		Payments:    payments,
		Bookings:    bookings,
		BaseURL:     baseURL,
		FrontendURL: frontendURL,
	}
}

// POST /api/paypal/create
func (pc *PayPalController) CreatePayment(c *gin.Context) {
	var req struct {
		Amount      float64           `json:"amount"`
		Currency    string            `json:"currency"`
		Description string            `json:"description"`
		BookingID   uint              `json:"bookingId"`
		Items       []paypal.LineItem `json:"items"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		monitoring.TrackPaymentOperation("create", "validation_error")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment data"})
		return
	}

	if req.Amount <= 0 || req.BookingID == 0 {
		monitoring.TrackPaymentOperation("create", "validation_error")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "amount and bookingId are required"})
		return
	}

	if req.Currency == "" {
		req.Currency = "USD"
	}
	if req.Description == "" {
		req.Description = fmt.Sprintf("Car rental booking #%d", req.BookingID)
	}

	order, err := pc.Gateway.CreateOrder(c.Request.Context(), paypal.CreateOrderRequest{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		BookingRef:  fmt.Sprintf("%d", req.BookingID),
		Items:       req.Items,
		ReturnURL:   pc.BaseURL + "/api/paypal/success",
		CancelURL:   pc.BaseURL + "/api/paypal/cancel",
	})
	if err != nil {
		monitoring.TrackPaymentOperation("create", "gateway_error")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create PayPal order", "error": err.Error()})
		return
	}

	payment := models.Payment{
		PaymentID: order.OrderID,
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    models.PaymentStatus(order.Status),
		Provider:  models.ProviderPayPal,
	}

	if err := pc.Payments.Create(c.Request.Context(), &payment); err != nil {
		monitoring.TrackPaymentOperation("create", "persistence_error")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save payment", "error": err.Error()})
		return
	}

	monitoring.TrackPaymentOperation("create", "ok")
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"paymentId":   payment.PaymentID,
		"status":      payment.Status,
		"approvalUrl": order.ApprovalURL,
		"createdAt":   payment.CreatedAt,
	})
}

// POST /api/paypal/execute
func (pc *PayPalController) ExecutePayment(c *gin.Context) {
	var req struct {
		PaymentID string `json:"paymentId"`
		PayerID   string `json:"payerId"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		monitoring.TrackPaymentOperation("execute", "validation_error")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment data"})
		return
	}

	if req.PaymentID == "" || req.PayerID == "" {
		monitoring.TrackPaymentOperation("execute", "validation_error")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "paymentId and payerId are required"})
		return
	}

	payment, err := pc.Payments.FindByPaymentID(c.Request.Context(), req.PaymentID)
	if errors.Is(err, repository.ErrNotFound) {
		monitoring.TrackPaymentOperation("execute", "not_found")
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Payment not found"})
		return
	}
	if err != nil {
		monitoring.TrackPaymentOperation("execute", "persistence_error")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load payment", "error": err.Error()})
		return
	}

	capture, err := pc.Gateway.CaptureOrder(c.Request.Context(), payment.PaymentID)
	if err != nil {
		// a duplicate capture rejection must not regress a terminal status
		if !payment.Status.Terminal() {
			payment.Status = models.PaymentStatusFailed
			if uerr := pc.Payments.Update(c.Request.Context(), payment); uerr != nil {
				log.Printf("failed to record payment failure for %s: %v", payment.PaymentID, uerr)
			}
		}
		monitoring.TrackPaymentOperation("execute", "gateway_error")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to capture PayPal payment", "error": err.Error()})
		return
	}

	now := time.Now()
	payment.Status = models.PaymentStatus(capture.Status)
	payment.PayerID = req.PayerID
	payment.CompletedAt = &now

	details, _ := json.Marshal(models.PaymentDetails{
		CaptureID:      capture.CaptureID,
		PayerEmail:     capture.PayerEmail,
		PayerFirstName: capture.PayerFirstName,
		PayerLastName:  capture.PayerLastName,
	})
	payment.Details = string(details)

	if err := pc.Payments.Update(c.Request.Context(), payment); err != nil {
		monitoring.TrackPaymentOperation("execute", "persistence_error")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update payment", "error": err.Error()})
		return
	}

	if capture.Status == "COMPLETED" {
		booking, err := pc.Bookings.FindByID(c.Request.Context(), payment.BookingID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			// no booking to project onto; tolerated
		case err != nil:
			log.Printf("failed to load booking %d after capture %s: %v", payment.BookingID, payment.PaymentID, err)
		default:
			note := "payment " + payment.PaymentID + " captured"
			if err := pc.Bookings.MarkPaid(c.Request.Context(), booking, note); err != nil {
				// payment already completed; booking stays pending, last write wins
				log.Printf("failed to confirm booking %d after capture %s: %v", payment.BookingID, payment.PaymentID, err)
			} else {
				monitoring.TrackBookingConfirmed()
			}
		}
	}

	monitoring.TrackPaymentOperation("execute", "ok")
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"paymentId":     payment.PaymentID,
		"transactionId": capture.CaptureID,
		"status":        payment.Status,
		"completedAt":   payment.CompletedAt,
		"payer": gin.H{
			"email":     capture.PayerEmail,
			"firstName": capture.PayerFirstName,
			"lastName":  capture.PayerLastName,
		},
	})
}

// GET /api/paypal/details/:paymentId
func (pc *PayPalController) GetPaymentDetails(c *gin.Context) {
	paymentID := c.Param("paymentId")

	payment, err := pc.Payments.FindByPaymentID(c.Request.Context(), paymentID)
	if errors.Is(err, repository.ErrNotFound) {
		monitoring.TrackPaymentOperation("query", "not_found")
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Payment not found"})
		return
	}
	if err != nil {
		monitoring.TrackPaymentOperation("query", "persistence_error")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load payment", "error": err.Error()})
		return
	}
	monitoring.TrackPaymentOperation("query", "ok")

	var details models.PaymentDetails
	if payment.Details != "" {
		_ = json.Unmarshal([]byte(payment.Details), &details)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": gin.H{
			"id":          payment.PaymentID,
			"status":      payment.Status,
			"amount":      payment.Amount,
			"currency":    payment.Currency,
			"createdAt":   payment.CreatedAt,
			"completedAt": payment.CompletedAt,
			"payer": gin.H{
				"email":     details.PayerEmail,
				"firstName": details.PayerFirstName,
				"lastName":  details.PayerLastName,
			},
		},
	})
}

// GET /api/paypal/success
// PayPal redirects the payer here with token (the order id) and PayerID.
func (pc *PayPalController) PaymentSuccess(c *gin.Context) {
	redirect := fmt.Sprintf("%s/payment/success?paymentId=%s&payerId=%s",
		pc.FrontendURL,
		url.QueryEscape(c.Query("token")),
		url.QueryEscape(c.Query("PayerID")),
	)
	c.Redirect(http.StatusFound, redirect)
}

// GET /api/paypal/cancel
func (pc *PayPalController) PaymentCancel(c *gin.Context) {
	c.Redirect(http.StatusFound, pc.FrontendURL+"/payment/cancelled")
}
