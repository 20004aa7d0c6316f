package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ManoharMakarla0412/coworking/internal/observability"
)

// ErrInitiationFailed means the gateway did not accept the initiation call.
// The order never left the Initiated state and no redirect was issued.
var ErrInitiationFailed = errors.New("payment initiation failed")

// Config is the merchant identity and redirect targets, injected explicitly
// so tests can substitute fixtures.
type Config struct {
	MerchantID string
	// RedirectURL is where the gateway sends the payer's browser after the
	// hosted page completes; the order ID rides along as a query parameter.
	RedirectURL string
	SuccessURL  string
	FailureURL  string
}

// Orchestrator builds, signs and submits payment-initiation requests and
// reconciles order outcomes against the gateway's authoritative record.
type Orchestrator struct {
	signer Signer
	gw     Gateway
	cfg    Config
	log    *logrus.Logger
	newID  func() string
}

func NewOrchestrator(signer Signer, gw Gateway, cfg Config, log *logrus.Logger) *Orchestrator {
	return &Orchestrator{signer: signer, gw: gw, cfg: cfg, log: log, newID: uuid.NewString}
}

type initiationPayload struct {
	MerchantID            string     `json:"merchantId"`
	MerchantUserID        string     `json:"merchantUserId"`
	MobileNumber          string     `json:"mobileNumber"`
	Amount                int64      `json:"amount"`
	MerchantTransactionID string     `json:"merchantTransactionId"`
	RedirectURL           string     `json:"redirectUrl"`
	RedirectMode          string     `json:"redirectMode"`
	PaymentInstrument     instrument `json:"paymentInstrument"`
}

type instrument struct {
	Type string `json:"type"`
}

// Initiate creates a fresh order and submits it to the gateway. It returns
// the order (reflecting its state after the call) and the gateway-provided
// hosted-page redirect URL.
//
// amountMajor is converted to the gateway's minor-unit convention by a fixed
// x100. That is exact only for currencies with two minor-unit digits, which
// is all this merchant account deals in.
func (o *Orchestrator) Initiate(ctx context.Context, name, phone string, amountMajor int64) (*Order, string, error) {
	order := &Order{
		ID:          o.newID(),
		OwnerName:   name,
		Phone:       phone,
		AmountMinor: amountMajor * 100,
		State:       StateInitiated,
	}

	payload := initiationPayload{
		MerchantID:            o.cfg.MerchantID,
		MerchantUserID:        name,
		MobileNumber:          phone,
		Amount:                order.AmountMinor,
		MerchantTransactionID: order.ID,
		RedirectURL:           fmt.Sprintf("%s/?id=%s", o.cfg.RedirectURL, order.ID),
		RedirectMode:          "POST",
		PaymentInstrument:     instrument{Type: "PAY_PAGE"},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return order, "", errors.Mark(errors.Wrap(err, "marshal initiation payload"), ErrInitiationFailed)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)
	checksum := o.signer.Sign(encoded, PayRoute)

	redirect, err := o.gw.Pay(ctx, encoded, checksum)
	if err != nil {
		observability.PaymentInitiations.WithLabelValues("failed").Inc()
		o.log.WithError(err).WithField("order_id", order.ID).Error("payment initiation failed")
		return order, "", errors.Mark(err, ErrInitiationFailed)
	}

	_ = order.Transition(StateAwaitingGatewayResult)
	observability.PaymentInitiations.WithLabelValues("accepted").Inc()
	o.log.WithFields(logrus.Fields{"order_id": order.ID, "amount_minor": order.AmountMinor}).Info("payment order initiated")
	return order, redirect, nil
}

// Reconcile resolves an order's final outcome by querying the gateway and
// returns the redirect target for the payer's browser. Any verdict other
// than success, including a failed query, resolves to the failure target —
// never an error to the caller. Orders are not persisted locally, so the
// lifecycle is re-derived from the gateway on every call; repeated
// reconciliations are idempotent with respect to the gateway's own state.
func (o *Orchestrator) Reconcile(ctx context.Context, orderID string) string {
	order := &Order{ID: orderID, State: StateAwaitingGatewayResult}

	path := fmt.Sprintf("%s/%s/%s", StatusRoutePrefix, o.cfg.MerchantID, orderID)
	checksum := o.signer.Sign("", path)

	ok, err := o.gw.Status(ctx, path, checksum)
	if err != nil {
		observability.PaymentReconciliations.WithLabelValues("error").Inc()
		o.log.WithError(err).WithField("order_id", orderID).Error("payment status query failed")
		_ = order.Transition(StateFailed)
		return o.cfg.FailureURL
	}
	if !ok {
		observability.PaymentReconciliations.WithLabelValues("failed").Inc()
		_ = order.Transition(StateFailed)
		return o.cfg.FailureURL
	}

	observability.PaymentReconciliations.WithLabelValues("succeeded").Inc()
	_ = order.Transition(StateSucceeded)
	return o.cfg.SuccessURL
}
