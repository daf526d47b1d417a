package complaint

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthfolio/healthfolio/internal/platform/auth"
	"github.com/healthfolio/healthfolio/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/complaints", h.ListComplaints)
	api.GET("/complaints/:id", h.GetComplaint)
	api.POST("/complaints", h.CreateComplaint)
	api.PUT("/complaints/:id", h.UpdateComplaint)
	api.DELETE("/complaints/:id", h.DeleteComplaint)
}

func (h *Handler) CreateComplaint(c echo.Context) error {
	ownerID, ok := auth.OwnerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	var cm Complaint
	if err := c.Bind(&cm); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), ownerID, &cm); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cm)
}

func (h *Handler) GetComplaint(c echo.Context) error {
	ownerID, ok := auth.OwnerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cm, err := h.svc.Get(c.Request().Context(), ownerID, id)
	if err != nil {
		return complaintError(err)
	}
	return c.JSON(http.StatusOK, cm)
}

func (h *Handler) ListComplaints(c echo.Context) error {
	ownerID, ok := auth.OwnerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	pg := pagination.FromContext(c)
	cms, total, err := h.svc.List(c.Request().Context(), ownerID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(cms, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateComplaint(c echo.Context) error {
	ownerID, ok := auth.OwnerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var cm Complaint
	if err := c.Bind(&cm); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cm.ID = id
	if err := h.svc.Update(c.Request().Context(), ownerID, &cm); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotOwner) {
			return complaintError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cm)
}

func (h *Handler) DeleteComplaint(c echo.Context) error {
	ownerID, ok := auth.OwnerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), ownerID, id); err != nil {
		return complaintError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func complaintError(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotOwner) {
		return echo.NewHTTPError(http.StatusNotFound, "complaint not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
