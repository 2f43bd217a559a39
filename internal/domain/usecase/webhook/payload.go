package webhook

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// Shape names the gateway payload layout a notification was extracted from
type Shape string

// Known payload shapes
const (
	// ShapePaymentLink carries everything under data, routing under data.payment_link
	ShapePaymentLink Shape = "payment_link"
	// ShapeFlatMeta carries fields at the top level, routing under meta
	ShapeFlatMeta Shape = "flat_meta"
)

// Notification is a gateway push reduced to what the ledger needs
type Notification struct {
	Shape         Shape
	Event         string
	TxRef         string
	RawStatus     string
	State         entity.PaymentState
	UserID        string
	Type          entity.TransactionType
	AmountInCents int64
	FeeInCents    int64
}

// flexString accepts a JSON string or number
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type routing struct {
	UserID          flexString `json:"userId"`
	TransactionType string     `json:"transactionType"`
}

// settlement holds the fields both shapes share, at different depths
type settlement struct {
	TxRef     flexString       `json:"tx_ref"`
	Reference flexString       `json:"reference"`
	Status    string           `json:"status"`
	Amount    *decimal.Decimal `json:"amount"`
	Fee       *decimal.Decimal `json:"fee"`
	AppFee    *decimal.Decimal `json:"app_fee"`
}

type paymentLinkData struct {
	settlement
	PaymentLink *routing `json:"payment_link"`
}

type envelope struct {
	settlement
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Meta  *routing        `json:"meta"`
}

// ParsePayload detects the payload shape and extracts a Notification.
// Failures wrap ErrMalformedPayload, ErrMissingRoutingMetadata or ErrUnknownTransactionType.
func ParsePayload(raw []byte) (*Notification, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.NewPayloadError("", "", "body is not a valid JSON object: "+err.Error(), errs.ErrMalformedPayload)
	}

	if data, ok := paymentLinkVariant(env.Data); ok {
		return extract(ShapePaymentLink, env.Event, data.settlement, data.PaymentLink, "data.")
	}
	if env.Meta != nil {
		return extract(ShapeFlatMeta, env.Event, env.settlement, env.Meta, "")
	}

	return nil, errs.NewPayloadError("", "meta.userId",
		"neither data.payment_link nor meta carries routing metadata", errs.ErrMissingRoutingMetadata)
}

func paymentLinkVariant(raw json.RawMessage) (*paymentLinkData, bool) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	var data paymentLinkData
	if err := json.Unmarshal(raw, &data); err != nil || data.PaymentLink == nil {
		return nil, false
	}
	return &data, true
}

func extract(shape Shape, event string, s settlement, r *routing, prefix string) (*Notification, error) {
	routingPrefix := "meta."
	if shape == ShapePaymentLink {
		routingPrefix = "data.payment_link."
	}

	n := &Notification{Shape: shape, Event: event}

	n.TxRef = string(s.TxRef)
	if n.TxRef == "" {
		n.TxRef = string(s.Reference)
	}
	if err := entity.ValidateTxRef(n.TxRef); err != nil {
		return nil, errs.NewPayloadError(string(shape), prefix+"tx_ref", "tx_ref or reference is required", errs.ErrMalformedPayload)
	}

	n.RawStatus = strings.TrimSpace(s.Status)
	if n.RawStatus == "" {
		return nil, errs.NewPayloadError(string(shape), prefix+"status", "status is required", errs.ErrMalformedPayload)
	}
	n.State = entity.ClassifyGatewayStatus(n.RawStatus)

	n.UserID = string(r.UserID)
	if n.UserID == "" {
		return nil, errs.NewPayloadError(string(shape), routingPrefix+"userId", "userId is required", errs.ErrMissingRoutingMetadata)
	}

	txType, err := entity.ParseTransactionType(r.TransactionType)
	if err != nil {
		return nil, errs.NewPayloadError(string(shape), routingPrefix+"transactionType", err.Error(), errs.ErrUnknownTransactionType)
	}
	n.Type = txType

	if s.Amount == nil {
		return nil, errs.NewPayloadError(string(shape), prefix+"amount", "amount is required", errs.ErrMalformedPayload)
	}
	if n.AmountInCents, err = entity.AmountFromDecimal(*s.Amount); err != nil || n.AmountInCents == 0 {
		return nil, errs.NewPayloadError(string(shape), prefix+"amount", "amount must be positive with at most two decimals", errs.ErrMalformedPayload)
	}

	fee := s.Fee
	if fee == nil {
		fee = s.AppFee
	}
	if fee != nil {
		if n.FeeInCents, err = entity.AmountFromDecimal(*fee); err != nil {
			return nil, errs.NewPayloadError(string(shape), prefix+"fee", "fee must be non-negative with at most two decimals", errs.ErrMalformedPayload)
		}
	}

	return n, nil
}
