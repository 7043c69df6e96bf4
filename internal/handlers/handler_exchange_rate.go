package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
	portssvc "github.com/sinahatake/currency-exchange-api/internal/core/ports/services"
	"github.com/sinahatake/currency-exchange-api/internal/dto"
	"github.com/sinahatake/currency-exchange-api/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to stored exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	rg.GET("/exchangeRates", h.listExchangeRates)
	rg.POST("/exchangeRates", h.createExchangeRate)
	rg.GET("/exchangeRate/:pair", h.getExchangeRate)
	rg.PATCH("/exchangeRate/:pair", h.updateExchangeRate)
}

// splitPair splits a six letter path segment such as "USDEUR" into its two codes.
// Code validation itself is left to the services.
func splitPair(pair string) (string, string, bool) {
	if len(pair) != 2*domain.CurrencyCodeLength {
		return "", "", false
	}
	return pair[:domain.CurrencyCodeLength], pair[domain.CurrencyCodeLength:], true
}

// createExchangeRate godoc
// @Summary Create a new exchange rate
// @Description Stores the quote for an ordered currency pair. Both currencies must be registered.
// @Tags exchange rates
// @Accept  x-www-form-urlencoded,json
// @Produce  json
// @Param   baseCurrencyCode   formData string true "Base currency code"
// @Param   targetCurrencyCode formData string true "Target currency code"
// @Param   rate               formData number true "Units of target per one unit of base"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 409 {object} map[string]string "Exchange rate already exists"
// @Failure 500 {object} map[string]string "Failed to create exchange rate"
// @Router /exchangeRates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, logger, "Required form field is missing or invalid: baseCurrencyCode, targetCurrencyCode and rate are required", err)
		return
	}

	logger.Info("Received request to create exchange rate",
		slog.String("base", req.BaseCurrencyCode),
		slog.String("target", req.TargetCurrencyCode),
		slog.String("rate", req.Rate.String()),
	)

	createdRate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create exchange rate")
		return
	}

	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(createdRate))
}

// getExchangeRate godoc
// @Summary Get a stored exchange rate
// @Description Retrieves the stored quote for exactly the given ordered pair, e.g. USDEUR
// @Tags exchange rates
// @Produce  json
// @Param   pair path string true "Base and target codes concatenated" MinLength(6) MaxLength(6)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency pair"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Router /exchangeRate/{pair} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	baseCode, targetCode, ok := splitPair(c.Param("pair"))
	if !ok {
		badRequest(c, logger, "Currency pair must be two 3-letter codes, e.g. USDEUR", nil)
		return
	}

	logger = logger.With(slog.String("base", baseCode), slog.String("target", targetCode))

	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), baseCode, targetCode)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List all exchange rates
// @Description Retrieves every stored quote with both currencies resolved
// @Tags exchange rates
// @Produce  json
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Router /exchangeRates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list exchange rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// updateExchangeRate godoc
// @Summary Update a stored exchange rate
// @Description Replaces the rate of an existing quote. The new rate is rounded half-up to 2 decimal places.
// @Tags exchange rates
// @Accept  x-www-form-urlencoded,json
// @Produce  json
// @Param   pair path string true "Base and target codes concatenated" MinLength(6) MaxLength(6)
// @Param   rate formData number true "New rate"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Failed to update exchange rate"
// @Router /exchangeRate/{pair} [patch]
func (h *exchangeRateHandler) updateExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	baseCode, targetCode, ok := splitPair(c.Param("pair"))
	if !ok {
		badRequest(c, logger, "Currency pair must be two 3-letter codes, e.g. USDEUR", nil)
		return
	}

	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, logger, "Required form field is missing or invalid: rate", err)
		return
	}

	logger = logger.With(slog.String("base", baseCode), slog.String("target", targetCode))
	logger.Info("Received request to update exchange rate", slog.String("rate", req.Rate.String()))

	updated, err := h.exchangeRateService.UpdateExchangeRate(c.Request.Context(), baseCode, targetCode, req.Rate)
	if err != nil {
		respondError(c, logger, err, "Failed to update exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(updated))
}
