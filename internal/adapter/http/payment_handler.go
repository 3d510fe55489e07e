package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"renthive-backend/internal/usecase/payment"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

// Pay charges an approved application and returns the new rental reference.
func (h *PaymentHandler) Pay(c echo.Context) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	appID, ok, err := pathParam(c, "applicationId")
	if !ok {
		return err
	}
	var req payment.PayInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	receipt, err := h.uc.Pay(c.Request().Context(), actor, appID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, receipt)
}
