package course

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
	api.GET("/courses", h.ListCourses)
	api.GET("/courses/:id", h.GetCourse)
	api.GET("/courses/:id/detail", h.GetCourseDetail)
	api.POST("/courses", h.CreateCourse)
	api.PUT("/courses/:id", h.UpdateCourse)
	api.DELETE("/courses/:id", h.DeleteCourse)
}

func (h *Handler) CreateCourse(c echo.Context) error {
	ownerID, ok := auth.OwnerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	var tc TreatmentCourse
	if err := c.Bind(&tc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), ownerID, &tc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, tc)
}

func (h *Handler) GetCourse(c echo.Context) error {
	ownerID, ok := auth.OwnerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	tc, err := h.svc.Get(c.Request().Context(), ownerID, id)
	if err != nil {
		return courseError(err)
	}
	return c.JSON(http.StatusOK, tc)
}

func (h *Handler) GetCourseDetail(c echo.Context) error {
	ownerID, ok := auth.OwnerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	detail, err := h.svc.Detail(c.Request().Context(), ownerID, id)
	if err != nil {
		return courseError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) ListCourses(c echo.Context) error {
	ownerID, ok := auth.OwnerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	pg := pagination.FromContext(c)
	tcs, total, err := h.svc.List(c.Request().Context(), ownerID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(tcs, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateCourse(c echo.Context) error {
	ownerID, ok := auth.OwnerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var tc TreatmentCourse
	if err := c.Bind(&tc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	tc.ID = id
	if err := h.svc.Update(c.Request().Context(), ownerID, &tc); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotOwner) {
			return courseError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, tc)
}

func (h *Handler) DeleteCourse(c echo.Context) error {
	ownerID, ok := auth.OwnerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), ownerID, id); err != nil {
		return courseError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func courseError(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotOwner) {
		return echo.NewHTTPError(http.StatusNotFound, "course not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
