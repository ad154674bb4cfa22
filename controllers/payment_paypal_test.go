package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"carrental/gateway/paypal"
	"carrental/models"
	"carrental/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	createCalls  int
	captureCalls int

	orderResult   *paypal.OrderResult
	captureResult *paypal.CaptureResult
	err           error
}

func (g *fakeGateway) CreateOrder(ctx context.Context, req paypal.CreateOrderRequest) (*paypal.OrderResult, error) {
	g.createCalls++
	if g.err != nil {
		return nil, g.err
	}
	return g.orderResult, nil
}

func (g *fakeGateway) CaptureOrder(ctx context.Context, orderID string) (*paypal.CaptureResult, error) {
	g.captureCalls++
	if g.err != nil {
		return nil, g.err
	}
	return g.captureResult, nil
}

type fakePaymentStore struct {
	payments map[string]*models.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[string]*models.Payment)}
}

func (s *fakePaymentStore) Create(ctx context.Context, p *models.Payment) error {
	cp := *p
	s.payments[p.PaymentID] = &cp
	return nil
}

func (s *fakePaymentStore) FindByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	p, ok := s.payments[paymentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakePaymentStore) Update(ctx context.Context, p *models.Payment) error {
	cp := *p
	s.payments[p.PaymentID] = &cp
	return nil
}

type fakeBookingStore struct {
	bookings  map[uint]*models.Booking
	history   map[uint][]models.BookingStatusEvent
	findCalls int
	findErr   error
}

func newFakeBookingStore(bookings ...*models.Booking) *fakeBookingStore {
	s := &fakeBookingStore{
		bookings: make(map[uint]*models.Booking),
		history:  make(map[uint][]models.BookingStatusEvent),
	}
	for _, b := range bookings {
		s.bookings[b.ID] = b
	}
	return s
}

func (s *fakeBookingStore) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	s.findCalls++
	if s.findErr != nil {
		return nil, s.findErr
	}
	b, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (s *fakeBookingStore) MarkPaid(ctx context.Context, b *models.Booking, note string) error {
	b.PaymentStatus = "paid"
	b.Status = "confirmed"
	s.history[b.ID] = append(s.history[b.ID], models.BookingStatusEvent{
		BookingID: b.ID,
		Status:    "confirmed",
		Note:      note,
	})
	return nil
}

func setupController(gateway *fakeGateway, payments *fakePaymentStore, bookings *fakeBookingStore) (*PayPalController, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	ctrl := NewPayPalController(gateway, payments, bookings, "http://localhost:8080", "http://localhost:3000")

	r := gin.New()
	r.POST("/api/paypal/create", ctrl.CreatePayment)
	r.POST("/api/paypal/execute", ctrl.ExecutePayment)
	r.GET("/api/paypal/details/:paymentId", ctrl.GetPaymentDetails)
	r.GET("/api/paypal/success", ctrl.PaymentSuccess)
	r.GET("/api/paypal/cancel", ctrl.PaymentCancel)
	return ctrl, r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if len(w.Body.Bytes()) > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, parsed
}

func TestCreatePayment_MissingFieldsShortCircuits(t *testing.T) {
	gateway := &fakeGateway{}
	_, r := setupController(gateway, newFakePaymentStore(), newFakeBookingStore())

	w, resp := doJSON(t, r, http.MethodPost, "/api/paypal/create", gin.H{"amount": 100.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])

	w, _ = doJSON(t, r, http.MethodPost, "/api/paypal/create", gin.H{"bookingId": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Zero(t, gateway.createCalls, "gateway must not be called on validation failure")
}

func TestCreatePayment_ReturnsApprovalURLAndPersists(t *testing.T) {
	gateway := &fakeGateway{
		orderResult: &paypal.OrderResult{
			OrderID:     "ORDER123",
			Status:      "CREATED",
			ApprovalURL: "https://www.sandbox.paypal.com/checkoutnow?token=ORDER123",
		},
	}
	payments := newFakePaymentStore()
	_, r := setupController(gateway, payments, newFakeBookingStore())

	w, resp := doJSON(t, r, http.MethodPost, "/api/paypal/create", gin.H{"amount": 135.0, "bookingId": 42})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "ORDER123", resp["paymentId"])
	assert.Equal(t, "https://www.sandbox.paypal.com/checkoutnow?token=ORDER123", resp["approvalUrl"])

	stored, err := payments.FindByPaymentID(context.Background(), "ORDER123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCreated, stored.Status)
	assert.Equal(t, uint(42), stored.BookingID)
	assert.Equal(t, "USD", stored.Currency) // default applied
	assert.Equal(t, models.ProviderPayPal, stored.Provider)
}

func TestCreatePayment_GatewayFailure(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("processor unavailable")}
	payments := newFakePaymentStore()
	_, r := setupController(gateway, payments, newFakeBookingStore())

	w, resp := doJSON(t, r, http.MethodPost, "/api/paypal/create", gin.H{"amount": 135.0, "bookingId": 42})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Empty(t, payments.payments)
}

func TestExecutePayment_MissingFieldsShortCircuits(t *testing.T) {
	gateway := &fakeGateway{}
	_, r := setupController(gateway, newFakePaymentStore(), newFakeBookingStore())

	w, _ := doJSON(t, r, http.MethodPost, "/api/paypal/execute", gin.H{"paymentId": "ORDER123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/paypal/execute", gin.H{"payerId": "PAYER7"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Zero(t, gateway.captureCalls)
}

func TestExecutePayment_UnknownPaymentIs404(t *testing.T) {
	gateway := &fakeGateway{}
	bookings := newFakeBookingStore()
	_, r := setupController(gateway, newFakePaymentStore(), bookings)

	w, resp := doJSON(t, r, http.MethodPost, "/api/paypal/execute", gin.H{"paymentId": "UNKNOWN", "payerId": "PAYER7"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Zero(t, gateway.captureCalls)
	assert.Zero(t, bookings.findCalls, "booking projector must not run for unknown payments")
}

func TestExecutePayment_CompletedConfirmsBooking(t *testing.T) {
	gateway := &fakeGateway{
		captureResult: &paypal.CaptureResult{
			Status:         "COMPLETED",
			CaptureID:      "CAP001",
			PayerEmail:     "jane@example.com",
			PayerFirstName: "Jane",
			PayerLastName:  "Doe",
		},
	}
	payments := newFakePaymentStore()
	require.NoError(t, payments.Create(context.Background(), &models.Payment{
		PaymentID: "ORDER123",
		BookingID: 42,
		Amount:    135,
		Currency:  "USD",
		Status:    models.PaymentStatusCreated,
	}))
	booking := &models.Booking{ID: 42, Status: "pending", PaymentStatus: "unpaid"}
	bookings := newFakeBookingStore(booking)
	_, r := setupController(gateway, payments, bookings)

	w, resp := doJSON(t, r, http.MethodPost, "/api/paypal/execute", gin.H{"paymentId": "ORDER123", "payerId": "PAYER7"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "CAP001", resp["transactionId"])
	payer := resp["payer"].(map[string]any)
	assert.Equal(t, "jane@example.com", payer["email"])
	assert.Equal(t, "Jane", payer["firstName"])

	stored, err := payments.FindByPaymentID(context.Background(), "ORDER123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
	assert.Equal(t, "PAYER7", stored.PayerID)
	assert.NotNil(t, stored.CompletedAt)

	assert.Equal(t, "confirmed", booking.Status)
	assert.Equal(t, "paid", booking.PaymentStatus)
	assert.Len(t, bookings.history[42], 1, "exactly one status-history entry appended")
}

func TestExecutePayment_NonCompletedLeavesBookingUntouched(t *testing.T) {
	gateway := &fakeGateway{
		captureResult: &paypal.CaptureResult{Status: "PENDING", CaptureID: "CAP002"},
	}
	payments := newFakePaymentStore()
	require.NoError(t, payments.Create(context.Background(), &models.Payment{
		PaymentID: "ORDER456",
		BookingID: 7,
		Status:    models.PaymentStatusCreated,
	}))
	booking := &models.Booking{ID: 7, Status: "pending", PaymentStatus: "unpaid"}
	bookings := newFakeBookingStore(booking)
	_, r := setupController(gateway, payments, bookings)

	w, _ := doJSON(t, r, http.MethodPost, "/api/paypal/execute", gin.H{"paymentId": "ORDER456", "payerId": "PAYER7"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "pending", booking.Status)
	assert.Equal(t, "unpaid", booking.PaymentStatus)
	assert.Empty(t, bookings.history[7])
}

func TestExecutePayment_MissingBookingToleratedSilently(t *testing.T) {
	gateway := &fakeGateway{
		captureResult: &paypal.CaptureResult{Status: "COMPLETED", CaptureID: "CAP003"},
	}
	payments := newFakePaymentStore()
	require.NoError(t, payments.Create(context.Background(), &models.Payment{
		PaymentID: "ORDER789",
		BookingID: 999,
		Status:    models.PaymentStatusCreated,
	}))
	_, r := setupController(gateway, payments, newFakeBookingStore())

	w, resp := doJSON(t, r, http.MethodPost, "/api/paypal/execute", gin.H{"paymentId": "ORDER789", "payerId": "PAYER7"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
}

func TestExecutePayment_CaptureFailureMarksPaymentFailed(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("ORDER_ALREADY_CAPTURED")}
	payments := newFakePaymentStore()
	require.NoError(t, payments.Create(context.Background(), &models.Payment{
		PaymentID: "ORDER123",
		BookingID: 42,
		Status:    models.PaymentStatusCreated,
	}))
	_, r := setupController(gateway, payments, newFakeBookingStore())

	w, resp := doJSON(t, r, http.MethodPost, "/api/paypal/execute", gin.H{"paymentId": "ORDER123", "payerId": "PAYER7"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, resp["success"])

	stored, err := payments.FindByPaymentID(context.Background(), "ORDER123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, stored.Status)
}

func TestExecutePayment_DuplicateExecuteKeepsCompletedStatus(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("ORDER_ALREADY_CAPTURED")}
	payments := newFakePaymentStore()
	require.NoError(t, payments.Create(context.Background(), &models.Payment{
		PaymentID: "ORDER123",
		BookingID: 42,
		Status:    models.PaymentStatusCompleted,
	}))
	_, r := setupController(gateway, payments, newFakeBookingStore())

	w, resp := doJSON(t, r, http.MethodPost, "/api/paypal/execute", gin.H{"paymentId": "ORDER123", "payerId": "PAYER7"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, resp["success"])

	stored, err := payments.FindByPaymentID(context.Background(), "ORDER123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
}

func TestExecutePayment_BookingLoadFailureStillSucceeds(t *testing.T) {
	gateway := &fakeGateway{
		captureResult: &paypal.CaptureResult{
			CaptureID:  "CAP001",
			Status:     "COMPLETED",
			PayerID:    "PAYER7",
			PayerEmail: "jane@example.com",
		},
	}
	payments := newFakePaymentStore()
	require.NoError(t, payments.Create(context.Background(), &models.Payment{
		PaymentID: "ORDER123",
		BookingID: 42,
		Status:    models.PaymentStatusCreated,
	}))
	bookings := newFakeBookingStore()
	bookings.findErr = errors.New("connection reset")
	_, r := setupController(gateway, payments, bookings)

	w, resp := doJSON(t, r, http.MethodPost, "/api/paypal/execute", gin.H{"paymentId": "ORDER123", "payerId": "PAYER7"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	stored, err := payments.FindByPaymentID(context.Background(), "ORDER123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
	assert.Empty(t, bookings.history)
}

func TestGetPaymentDetails_IdempotentReads(t *testing.T) {
	payments := newFakePaymentStore()
	require.NoError(t, payments.Create(context.Background(), &models.Payment{
		PaymentID: "ORDER123",
		BookingID: 42,
		Amount:    135,
		Currency:  "USD",
		Status:    models.PaymentStatusCreated,
	}))
	_, r := setupController(&fakeGateway{}, payments, newFakeBookingStore())

	w1, _ := doJSON(t, r, http.MethodGet, "/api/paypal/details/ORDER123", nil)
	w2, _ := doJSON(t, r, http.MethodGet, "/api/paypal/details/ORDER123", nil)

	require.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
}

func TestGetPaymentDetails_Unknown404(t *testing.T) {
	_, r := setupController(&fakeGateway{}, newFakePaymentStore(), newFakeBookingStore())

	w, resp := doJSON(t, r, http.MethodGet, "/api/paypal/details/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestPaymentRedirects(t *testing.T) {
	_, r := setupController(&fakeGateway{}, newFakePaymentStore(), newFakeBookingStore())

	w, _ := doJSON(t, r, http.MethodGet, "/api/paypal/success?token=ORDER123&PayerID=PAYER7", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/payment/success?paymentId=ORDER123&payerId=PAYER7", w.Header().Get("Location"))

	w, _ = doJSON(t, r, http.MethodGet, "/api/paypal/cancel", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/payment/cancelled", w.Header().Get("Location"))
}
