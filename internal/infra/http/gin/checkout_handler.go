package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"pousada/internal/app/dto"
	checkoutapp "pousada/internal/app/handlers/checkout"
	"pousada/internal/app/queries"
	"pousada/internal/domain/shared/daterange"
)

type CheckoutHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

func (h CheckoutHandler) Quote(c *gin.Context) {
	var req dto.CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := queries.Ask[checkoutapp.QuoteQuery, dto.CheckoutSummary](c.Request.Context(), h.Queries, checkoutapp.QuoteQuery{Cart: req})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type validateDiscountRequest struct {
	Code     string         `json:"code"`
	CheckIn  daterange.Date `json:"check_in"`
	CheckOut daterange.Date `json:"check_out"`
	Subtotal int64          `json:"subtotal"`
}

// ValidateDiscount always answers 200 for a well-formed request; rejection is part of the body.
func (h CheckoutHandler) ValidateDiscount(c *gin.Context) {
	var req validateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	q := checkoutapp.ValidateDiscountQuery{
		Code:     req.Code,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Subtotal: req.Subtotal,
	}
	result, err := queries.Ask[checkoutapp.ValidateDiscountQuery, dto.DiscountOutcome](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ CheckoutHTTP = CheckoutHandler{}
