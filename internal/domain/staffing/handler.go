package staffing

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rsrujukan/hospital/internal/platform/auth"
	"github.com/rsrujukan/hospital/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	adminOnly := auth.RequireRole("admin")

	writers := api.Group("", adminOnly)
	writers.POST("/staff", h.CreateStaff)
	writers.PUT("/staff/:id", h.UpdateStaff)
	writers.POST("/shifts", h.CreateShift)

	api.GET("/staff", h.ListStaff)
	api.GET("/staff/:id", h.GetStaff)
	api.GET("/shifts", h.ListShifts)
	api.GET("/shifts/:id", h.GetShift)
}

func (h *Handler) CreateStaff(c echo.Context) error {
	var st Staff
	if err := c.Bind(&st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateStaff(c.Request().Context(), &st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"id": st.ID})
}

// GetStaff resolves by row id, falling back to the employee code for
// non-uuid params.
func (h *Handler) GetStaff(c echo.Context) error {
	param := c.Param("id")
	if id, err := uuid.Parse(param); err == nil {
		st, err := h.svc.GetStaff(c.Request().Context(), id)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "staff not found")
		}
		return c.JSON(http.StatusOK, st)
	}
	st, err := h.svc.GetStaffByCode(c.Request().Context(), param)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "staff not found")
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) UpdateStaff(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var st Staff
	if err := c.Bind(&st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st.ID = id
	if err := h.svc.UpdateStaff(c.Request().Context(), &st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) ListStaff(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := map[string]string{}
	if p := c.QueryParam("role"); p != "" {
		params["role"] = p
	}
	if p := c.QueryParam("on_call"); p != "" {
		params["on_call"] = p
	}
	var (
		items []*Staff
		total int
		err   error
	)
	if len(params) > 0 {
		items, total, err = h.svc.SearchStaff(c.Request().Context(), params, pg.Limit, pg.Offset)
	} else {
		items, total, err = h.svc.ListStaff(c.Request().Context(), pg.Limit, pg.Offset)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) CreateShift(c echo.Context) error {
	var sh Shift
	if err := c.Bind(&sh); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateShift(c.Request().Context(), &sh); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"id": sh.ID})
}

func (h *Handler) GetShift(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sh, err := h.svc.GetShift(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "shift not found")
	}
	return c.JSON(http.StatusOK, sh)
}

func (h *Handler) ListShifts(c echo.Context) error {
	pg := pagination.FromContext(c)
	if staffID := c.QueryParam("staff_id"); staffID != "" {
		items, total, err := h.svc.ListShiftsByStaff(c.Request().Context(), staffID, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}
	items, total, err := h.svc.ListShifts(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
