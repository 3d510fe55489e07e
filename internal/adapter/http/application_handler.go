package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	domainApp "renthive-backend/internal/domain/application"
	"renthive-backend/internal/usecase/applicant"
	"renthive-backend/internal/usecase/application"
)

type ApplicationHandler struct {
	uc         *application.Usecase
	applicants *applicant.Usecase
}

func NewApplicationHandler(uc *application.Usecase, applicants *applicant.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, applicants: applicants}
}

func (h *ApplicationHandler) Create(c echo.Context) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	var req application.CreateInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), actor, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) Update(c echo.Context) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	appID, ok, err := pathParam(c, "id")
	if !ok {
		return err
	}
	var req application.UpdateInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), actor, appID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Cancel(c echo.Context) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	appID, ok, err := pathParam(c, "id")
	if !ok {
		return err
	}
	if err := h.uc.Cancel(c.Request().Context(), actor, appID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	appID, ok, err := pathParam(c, "id")
	if !ok {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), actor, appID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListMine hides cancelled applications unless ?include_cancelled=true.
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	include := false
	if raw := c.QueryParam("include_cancelled"); raw != "" {
		if include, err = strconv.ParseBool(raw); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "include_cancelled must be a boolean"})
		}
	}
	list, err := h.uc.ListMine(c.Request().Context(), actor, include)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ApplicationHandler) Approve(c echo.Context) error {
	return h.decide(c, domainApp.DecisionApprove)
}

func (h *ApplicationHandler) Reject(c echo.Context) error {
	return h.decide(c, domainApp.DecisionReject)
}

func (h *ApplicationHandler) decide(c echo.Context, d domainApp.Decision) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	appID, ok, err := pathParam(c, "id")
	if !ok {
		return err
	}
	// body is optional; reject may carry a reason
	var req application.DecideInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	req.Decision = d
	dto, err := h.uc.Decide(c.Request().Context(), actor, appID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// AllBookings is the raw list of applications on the owner's listings.
func (h *ApplicationHandler) AllBookings(c echo.Context) error {
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

// Applicants groups the owner's applications by listing.
func (h *ApplicationHandler) Applicants(c echo.Context) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	groups, err := h.applicants.ForOwner(c.Request().Context(), actor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, groups)
}
