package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domainListing "renthive-backend/internal/domain/listing"
	"renthive-backend/internal/usecase/listing"
	"renthive-backend/internal/usecase/review"
)

type ListingHandler struct {
	uc      *listing.Usecase
	reviews *review.Usecase
}

func NewListingHandler(uc *listing.Usecase, reviews *review.Usecase) *ListingHandler {
	return &ListingHandler{uc: uc, reviews: reviews}
}

func (h *ListingHandler) CreateProperty(c echo.Context) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	var req listing.CreatePropertyInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CreateProperty(c.Request().Context(), actor, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ListingHandler) CreateVehicle(c echo.Context) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	var req listing.CreateVehicleInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CreateVehicle(c.Request().Context(), actor, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ListingHandler) Get(c echo.Context) error {
	id, ok, err := pathParam(c, "id")
	if !ok {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), c.Param("type"), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ListingHandler) ListMine(c echo.Context) error {
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

// Quote prices a date range for the listing. Incomplete ranges price to zero.
func (h *ListingHandler) Quote(c echo.Context) error {
	id, ok, err := pathParam(c, "id")
	if !ok {
		return err
	}
	dto, err := h.uc.Quote(c.Request().Context(), c.Param("type"), id, c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ListingHandler) Reviews(c echo.Context) error {
	ref, ok, err := listingRef(c)
	if !ok {
		return err
	}
	list, err := h.reviews.List(c.Request().Context(), ref)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ListingHandler) UpsertReview(c echo.Context) error {
	actor, ok, err := actorOf(c)
	if !ok {
		return err
	}
	ref, ok, err := listingRef(c)
	if !ok {
		return err
	}
	var req review.UpsertInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.reviews.Upsert(c.Request().Context(), actor, ref, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func listingRef(c echo.Context) (domainListing.Ref, bool, error) {
	id, ok, err := pathParam(c, "id")
	if !ok {
		return domainListing.Ref{}, false, err
	}
	kind, err := domainListing.ParseKind(c.Param("type"))
	if err != nil {
		return domainListing.Ref{}, false, fail(c, err)
	}
	return domainListing.Ref{Kind: kind, ID: id}, true, nil
}
