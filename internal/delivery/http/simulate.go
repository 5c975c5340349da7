package http

import (
	"errors"
	"net/http"

	"golang-quant/internal/dto"
	"golang-quant/internal/quant"
	"golang-quant/internal/repository"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupSimulation(base *echo.Group) {
	simulationGroup := base.Group("/simulate")
	simulationGroup.POST("", h.runSimulation)
}

func (h *HttpAPIHandler) runSimulation(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.SimulationRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.service.SimulationService.Run(ctx, *req)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyDataset) || errors.Is(err, quant.ErrInsufficientData) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to run simulation"})
	}

	return c.JSON(http.StatusOK, result)
}
