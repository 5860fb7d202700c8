package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	models "TAEngine/internal/domain/models"
	domrepo "TAEngine/internal/domain/repository"
	"TAEngine/internal/service/ratelimit"
	"TAEngine/internal/usecase"
	xhttp "TAEngine/pkg/http"
	xlogger "TAEngine/pkg/logger"
)

// Per-client budget for calculation endpoints. Batch requests fan out
// internally, so the bucket refills slower than one request per indicator.
const (
	rateCapacity  = 30
	rateRefillSec = 10
)

// IndicatorsHandler exposes the calculation engine over HTTP. Handlers stay
// thin: market coordinates are checked here, indicator parameters at the
// dispatcher.
type IndicatorsHandler struct {
	logger *xlogger.Logger
	engine *usecase.Engine
	rl     *ratelimit.Limiter
}

func NewIndicatorsHandler(logger *xlogger.Logger, engine *usecase.Engine) *IndicatorsHandler {
	return &IndicatorsHandler{logger: logger, engine: engine, rl: ratelimit.New()}
}

func (h *IndicatorsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/indicators", h.rateLimit)
	g.POST("/calculate", h.Calculate)
	g.POST("/batch", h.Batch)
	g.DELETE("/cache", h.InvalidateCache)
}

func (h *IndicatorsHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.rl.Allow(c.RealIP(), rateCapacity, rateRefillSec) {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		}
		return next(c)
	}
}

type calculateResponse struct {
	Market    models.MarketKey        `json:"market"`
	Result    *models.IndicatorResult `json:"result"`
	FromCache bool                    `json:"fromCache"`
	Hits      int64                   `json:"hits,omitempty"`
}

func (h *IndicatorsHandler) Calculate(c echo.Context) error {
	req := &models.CalculateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	market := models.MarketKey{
		Venue:     req.Venue,
		Symbol:    req.Symbol,
		Timeframe: string(domrepo.NormalizeTimeframe(req.Timeframe)),
	}

	out, err := h.engine.Calculate(c.Request().Context(), market, req.Indicator)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, calculateResponse{
		Market:    market,
		Result:    out.Result,
		FromCache: out.FromCache,
		Hits:      out.Hits,
	})
}

func (h *IndicatorsHandler) Batch(c echo.Context) error {
	req := &models.BatchCalculateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	market := models.MarketKey{
		Venue:     req.Venue,
		Symbol:    req.Symbol,
		Timeframe: string(domrepo.NormalizeTimeframe(req.Timeframe)),
	}

	res, err := h.engine.CalculateBatch(c.Request().Context(), market, nil, req.Indicators)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *IndicatorsHandler) InvalidateCache(c echo.Context) error {
	req := &models.InvalidateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	filter := models.InvalidationFilter{
		Venue:         req.Venue,
		Symbol:        req.Symbol,
		IndicatorType: models.IndicatorType(req.IndicatorType),
	}
	if err := h.engine.Invalidate(c.Request().Context(), filter); err != nil {
		h.logger.Error("cache invalidation failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.NoContentResponse(c)
}

// errorResponse translates calculation errors into HTTP statuses.
func (h *IndicatorsHandler) errorResponse(c echo.Context, err error) error {
	var (
		unsupported  *models.UnsupportedIndicatorError
		invalidParam *models.InvalidParameterError
		insufficient *models.InsufficientDataError
		invalidRange *models.InvalidRangeError
	)
	switch {
	case errors.As(err, &unsupported):
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_UNSUPPORTED_INDICATOR", "indicator.type", err.Error(), http.StatusBadRequest))
	case errors.As(err, &invalidParam):
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_INVALID_PARAMETER", invalidParam.Name, err.Error(), http.StatusBadRequest))
	case errors.As(err, &insufficient):
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_INSUFFICIENT_DATA", "", err.Error(), http.StatusUnprocessableEntity))
	case errors.As(err, &invalidRange):
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_INVALID_RANGE", "", err.Error(), http.StatusBadRequest))
	default:
		h.logger.Error("calculation failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
}
