package app

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ManoharMakarla0412/coworking/internal/booking"
	"github.com/ManoharMakarla0412/coworking/internal/interval"
	"github.com/ManoharMakarla0412/coworking/internal/payment"
)

type Handlers struct {
	bookings *booking.Service
	payments *payment.Orchestrator
	log      *logrus.Logger
}

func NewHandlers(bookings *booking.Service, payments *payment.Orchestrator, log *logrus.Logger) *Handlers {
	return &Handlers{bookings: bookings, payments: payments, log: log}
}

type eventTime struct {
	DateTime string `json:"dateTime" binding:"required"`
	TimeZone string `json:"timeZone"`
}

type eventBody struct {
	Summary     string    `json:"summary" binding:"required"`
	Description string    `json:"description"`
	Start       eventTime `json:"start" binding:"required"`
	End         eventTime `json:"end" binding:"required"`
}

type createEventReq struct {
	Event       eventBody `json:"event" binding:"required"`
	AccessToken string    `json:"accessToken"`
	UserEmail   string    `json:"userEmail"`
}

type conflictDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// POST /api/events/create-event
func (h *Handlers) CreateEvent(c *gin.Context) {
	var req createEventReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.AccessToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	start, err := time.Parse(time.RFC3339, req.Event.Start.DateTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start dateTime"})
		return
	}
	end, err := time.Parse(time.RFC3339, req.Event.End.DateTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end dateTime"})
		return
	}
	iv, err := interval.New(start, end, req.Event.Start.TimeZone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.bookings.Create(c.Request.Context(), req.AccessToken, booking.CandidateEvent{
		Interval:      iv,
		Title:         req.Event.Summary,
		Description:   req.Event.Description,
		OwnerIdentity: req.UserEmail,
	})
	if err != nil {
		h.renderBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event created successfully!",
		"event":   created,
	})
}

func (h *Handlers) renderBookingError(c *gin.Context, err error) {
	var conflictErr *booking.ConflictError
	var rejectedErr *booking.UpstreamRejectedError
	var partialErr *booking.PartialSuccessError

	switch {
	case errors.Is(err, booking.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, booking.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "calendar availability check failed"})
	case errors.As(err, &conflictErr):
		conflicts := make([]conflictDTO, 0, len(conflictErr.Conflicts))
		for _, b := range conflictErr.Conflicts {
			conflicts = append(conflicts, conflictDTO{Start: b.Interval.Start, End: b.Interval.End})
		}
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Time slot not available",
			"conflicts": conflicts,
		})
	case errors.As(err, &rejectedErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to create event in Google Calendar",
			"details": rejectedErr.Details,
		})
	case errors.As(err, &partialErr):
		// The upstream event exists; report it so the caller can retry
		// persistence without creating a duplicate event.
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Event created successfully!",
			"warning": "event confirmed upstream but local record write failed",
			"event":   partialErr.Created,
		})
	default:
		h.log.WithError(err).Error("create event failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

type createOrderReq struct {
	Name         string `json:"name" binding:"required"`
	MobileNumber string `json:"mobileNumber" binding:"required"`
	Amount       int64  `json:"amount" binding:"required,gt=0"`
}

// POST /api/payment/order
func (h *Handlers) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, redirect, err := h.payments.Initiate(c.Request.Context(), req.Name, req.MobileNumber, req.Amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initiate payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "OK", "url": redirect})
}

// GET /api/payment/status?id=<orderId>
//
// Invoked by the gateway's redirect back to us, so the reply is always an
// HTTP redirect, never a JSON body.
func (h *Handlers) PaymentStatus(c *gin.Context) {
	orderID := c.Query("id")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}
	target := h.payments.Reconcile(c.Request.Context(), orderID)
	c.Redirect(http.StatusFound, target)
}

// GET /healthz
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
