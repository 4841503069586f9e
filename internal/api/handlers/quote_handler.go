package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"carrental/internal/domain/entities"
	"carrental/internal/pricing"
	"carrental/internal/services"
)

type QuoteHandler struct {
	ledger *services.RentalLedger
	policy *pricing.Policy
}

func NewQuoteHandler(ledger *services.RentalLedger, policy *pricing.Policy) *QuoteHandler {
	return &QuoteHandler{ledger: ledger, policy: policy}
}

// QuoteRequest prices either a specific car (CarID) or a hypothetical one
// (Category + DailyRate).
type QuoteRequest struct {
	CarID        string           `json:"car_id"`
	Category     string           `json:"category"`
	DailyRate    *decimal.Decimal `json:"daily_rate"`
	DurationDays int              `json:"duration_days"`
}

// Quote handles POST /quotes. Nothing is reserved.
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var (
		cost entities.CostBreakdown
		err  error
	)
	switch {
	case req.CarID != "":
		cost, err = h.ledger.Quote(c.Request.Context(), req.CarID, req.DurationDays)
	case req.Category != "" && req.DailyRate != nil:
		var category entities.Category
		if category, err = entities.ParseCategory(req.Category); err == nil {
			cost, err = h.policy.Calculate(category, *req.DailyRate, req.DurationDays)
		}
	default:
		badRequest(c, errors.New("either car_id or category and daily_rate is required"))
		return
	}

	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cost)
}
