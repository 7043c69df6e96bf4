package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	portssvc "github.com/sinahatake/currency-exchange-api/internal/core/ports/services"
	"github.com/sinahatake/currency-exchange-api/internal/dto"
	"github.com/sinahatake/currency-exchange-api/internal/middleware"
)

type exchangeHandler struct {
	exchangeService portssvc.ExchangeSvc
}

func newExchangeHandler(es portssvc.ExchangeSvc) *exchangeHandler {
	return &exchangeHandler{exchangeService: es}
}

func registerExchangeRoutes(rg *gin.RouterGroup, exchangeService portssvc.ExchangeSvc) {
	h := newExchangeHandler(exchangeService)
	rg.GET("/exchange", h.convert)
}

// convert godoc
// @Summary Convert an amount between two currencies
// @Description Uses the direct quote, the inverse quote or a cross rate through USD, in that order.
// @Tags exchange
// @Produce  json
// @Param   from   query string true "Base currency code"
// @Param   to     query string true "Target currency code"
// @Param   amount query number true "Amount in the base currency"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Currency or exchange rate not found"
// @Failure 500 {object} map[string]string "Failed to convert amount"
// @Router /exchange [get]
func (h *exchangeHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.ConvertQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, logger, "Required query parameter is missing: from, to and amount are required", err)
		return
	}

	amount, err := decimal.NewFromString(query.Amount)
	if err != nil {
		badRequest(c, logger, "Amount must be a valid number: '"+query.Amount+"'", err)
		return
	}

	logger = logger.With(slog.String("base", query.From), slog.String("target", query.To))

	result, err := h.exchangeService.Convert(c.Request.Context(), query.From, query.To, amount)
	if err != nil {
		respondError(c, logger, err, "Failed to convert amount")
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(result))
}
