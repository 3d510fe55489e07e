package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"renthive-backend/internal/usecase/rental"
)

type RentalHandler struct{ uc *rental.Usecase }

func NewRentalHandler(uc *rental.Usecase) *RentalHandler { return &RentalHandler{uc: uc} }

func (h *RentalHandler) ListMine(c echo.Context) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	list, err := h.uc.ListMine(c.Request().Context(), actor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RentalHandler) ListForOwner(c echo.Context) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	list, err := h.uc.ListForOwner(c.Request().Context(), actor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RentalHandler) Complete(c echo.Context) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	rentalID, ok, err := pathParam(c, "id")
	if !ok {
		return err
	}
	dto, err := h.uc.Complete(c.Request().Context(), actor, rentalID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
