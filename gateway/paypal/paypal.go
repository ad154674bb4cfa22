package paypal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"carrental/config"
	"carrental/monitoring"

	paypalsdk "github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"
)

// ErrAuthentication covers any failure of the client-credentials exchange.
var ErrAuthentication = errors.New("failed to obtain access token")

// RequestError is any non-success response from the processor.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return "paypal " + e.Op + ": " + e.Err.Error()
}

func (e *RequestError) Unwrap() error { return e.Err }

type LineItem struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Quantity int     `json:"quantity"`
}

type CreateOrderRequest struct {
	Amount      float64
	Currency    string
	Description string
	BookingRef  string
	Items       []LineItem
	ReturnURL   string
	CancelURL   string
}

type OrderResult struct {
	OrderID     string
	Status      string
	ApprovalURL string
}

type CaptureResult struct {
	Status         string
	CaptureID      string
	PayerID        string
	PayerEmail     string
	PayerFirstName string
	PayerLastName  string
}

type Client struct {
	pc *paypalsdk.Client
}

// NewClient builds the SDK client and performs the initial token exchange.
// The SDK refreshes expired tokens on later calls.
func NewClient(cfg config.PayPalConfig) (*Client, error) {
	pc, err := paypalsdk.NewClient(cfg.ClientID, cfg.ClientSecret, cfg.APIBase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	if _, err := pc.GetAccessToken(context.Background()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	log.Printf("paypal client initialized against %s", cfg.APIBase)
	return &Client{pc: pc}, nil
}

// CreateOrder opens a capture-intent order for one booking and returns the
// processor order id plus the payer-facing approval link.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResult, error) {
	started := time.Now()

	currency := strings.ToUpper(req.Currency)

	items := make([]paypalsdk.Item, 0, len(req.Items))
	itemTotal := decimal.Zero
	for _, it := range req.Items {
		unit, qty := unitPrice(it.Amount, it.Quantity)
		items = append(items, paypalsdk.Item{
			Name: it.Name,
			UnitAmount: &paypalsdk.Money{
				Currency: currency,
				Value:    unit.StringFixed(2),
			},
			Quantity: fmt.Sprintf("%d", qty),
		})
		itemTotal = itemTotal.Add(unit.Mul(decimal.NewFromInt(int64(qty))))
	}

	amount := &paypalsdk.PurchaseUnitAmount{
		Currency: currency,
		Value:    decimal.NewFromFloat(req.Amount).StringFixed(2),
	}
	if len(items) > 0 {
		amount.Breakdown = &paypalsdk.PurchaseUnitAmountBreakdown{
			ItemTotal: &paypalsdk.Money{
				Currency: currency,
				Value:    itemTotal.StringFixed(2),
			},
		}
	}

	units := []paypalsdk.PurchaseUnitRequest{
		{
			ReferenceID: req.BookingRef,
			CustomID:    req.BookingRef,
			Description: req.Description,
			Amount:      amount,
			Items:       items,
		},
	}

	appContext := &paypalsdk.ApplicationContext{
		ReturnURL: req.ReturnURL,
		CancelURL: req.CancelURL,
	}

	order, err := c.pc.CreateOrder(ctx, paypalsdk.OrderIntentCapture, units, nil, appContext)
	monitoring.ObserveGatewayRequest("create_order", err, started)
	if err != nil {
		return nil, &RequestError{Op: "create order", Err: err}
	}

	approvalURL := approvalLink(order)
	if approvalURL == "" {
		return nil, &RequestError{Op: "create order", Err: errors.New("approval link missing in processor response")}
	}

	return &OrderResult{
		OrderID:     order.ID,
		Status:      string(order.Status),
		ApprovalURL: approvalURL,
	}, nil
}

// CaptureOrder finalizes a previously approved order. The processor rejects
// duplicate captures itself; no idempotency guard exists here.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	started := time.Now()

	resp, err := c.pc.CaptureOrder(ctx, orderID, paypalsdk.CaptureOrderRequest{})
	monitoring.ObserveGatewayRequest("capture_order", err, started)
	if err != nil {
		return nil, &RequestError{Op: "capture order", Err: err}
	}

	result := &CaptureResult{Status: string(resp.Status)}

	for _, pu := range resp.PurchaseUnits {
		if pu.Payments != nil && len(pu.Payments.Captures) > 0 {
			result.CaptureID = pu.Payments.Captures[0].ID
			break
		}
	}

	if resp.Payer != nil {
		result.PayerID = resp.Payer.PayerID
		result.PayerEmail = resp.Payer.EmailAddress
		if resp.Payer.Name != nil {
			result.PayerFirstName = resp.Payer.Name.GivenName
			result.PayerLastName = resp.Payer.Name.Surname
		}
	}

	return result, nil
}

// unitPrice divides a line-item amount by its quantity, treating a missing or
// zero quantity as 1.
func unitPrice(amount float64, quantity int) (decimal.Decimal, int) {
	if quantity <= 0 {
		quantity = 1
	}
	unit := decimal.NewFromFloat(amount).Div(decimal.NewFromInt(int64(quantity))).Round(2)
	return unit, quantity
}

func approvalLink(order *paypalsdk.Order) string {
	for _, link := range order.Links {
		if link.Rel == "approve" {
			return link.Href
		}
	}
	return ""
}
