package condition

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthfolio/healthfolio/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes mounts the lookup lists. The registration form
// needs them before any session exists.
func (h *Handler) RegisterPublicRoutes(e *echo.Echo) {
	e.GET("/api/v1/allergies", h.ListAllergies)
	e.GET("/api/v1/chronic-diseases", h.ListDiseases)
}

// RegisterRoutes mounts the session-protected endpoints.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/conditions/me", h.Mine)
}

func (h *Handler) ListAllergies(c echo.Context) error {
	as, err := h.svc.ListAllergies(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, as)
}

func (h *Handler) ListDiseases(c echo.Context) error {
	ds, err := h.svc.ListDiseases(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ds)
}

func (h *Handler) Mine(c echo.Context) error {
	ownerID, ok := auth.OwnerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	uc, err := h.svc.ForUser(c.Request().Context(), ownerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, uc)
}
