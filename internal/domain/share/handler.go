package share

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/healthfolio/healthfolio/internal/domain/profile"
	"github.com/healthfolio/healthfolio/internal/platform/auth"
)

// Handler exposes share-link minting for authenticated owners and the
// anonymous view endpoint for token holders.
type Handler struct {
	service   *Service
	assembler *Assembler
	baseURL   string
}

func NewHandler(service *Service, assembler *Assembler, baseURL string) *Handler {
	return &Handler{service: service, assembler: assembler, baseURL: strings.TrimRight(baseURL, "/")}
}

// RegisterRoutes wires the authenticated mint endpoint.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/share", h.Mint)
}

// RegisterPublicRoutes wires the anonymous view endpoint.
func (h *Handler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/view/:token", h.View)
}

func (h *Handler) Mint(c echo.Context) error {
	ownerID, ok := auth.OwnerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	tok, err := h.service.Mint(c.Request().Context(), ownerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create share link")
	}

	return c.JSON(http.StatusCreated, MintResponse{
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt,
		URL:       h.baseURL + "/view/" + tok.Token,
	})
}

// View serves the anonymous snapshot. Unknown and expired tokens produce
// the same response so a caller probing the endpoint cannot tell whether a
// token ever existed.
func (h *Handler) View(c echo.Context) error {
	token := c.Param("token")

	ownerID, err := h.service.Validate(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) || errors.Is(err, ErrTokenExpired) {
			return echo.NewHTTPError(http.StatusUnauthorized, "link is invalid or expired")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to open share link")
	}

	view, err := h.assembler.BuildView(c.Request().Context(), ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build shared view")
	}

	return c.JSON(http.StatusOK, view)
}
