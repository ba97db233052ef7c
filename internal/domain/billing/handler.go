package billing

import (
	"errors"
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
	billingStaff := auth.RequireRole("admin", "farmasi")

	group := api.Group("", billingStaff)
	group.POST("/insurance-claims", h.SubmitClaim)
	group.GET("/insurance-claims", h.ListClaims)
	group.GET("/insurance-claims/:id", h.GetClaim)
	group.PUT("/insurance-claims/:id/status", h.UpdateClaimStatus)

	adminOnly := api.Group("", auth.RequireRole("admin"))
	adminOnly.POST("/government-reports", h.QueueReport)
	adminOnly.GET("/government-reports", h.ListReports)
	adminOnly.GET("/government-reports/:id", h.GetReport)
	adminOnly.PUT("/government-reports/:id/status", h.UpdateReportStatus)
}

func billingHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrClaimNotFound), errors.Is(err, ErrReportNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

func (h *Handler) SubmitClaim(c echo.Context) error {
	var cl InsuranceClaim
	if err := c.Bind(&cl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SubmitClaim(c.Request().Context(), &cl); err != nil {
		return billingHTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"id": cl.ID})
}

func (h *Handler) GetClaim(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cl, err := h.svc.GetClaim(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "insurance claim not found")
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *Handler) UpdateClaimStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateClaimStatus(c.Request().Context(), id, body.Status); err != nil {
		return billingHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": body.Status})
}

func (h *Handler) ListClaims(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := map[string]string{}
	for _, key := range []string{"payer", "status", "patient_id"} {
		if p := c.QueryParam(key); p != "" {
			params[key] = p
		}
	}
	var (
		items []*InsuranceClaim
		total int
		err   error
	)
	if len(params) > 0 {
		items, total, err = h.svc.SearchClaims(c.Request().Context(), params, pg.Limit, pg.Offset)
	} else {
		items, total, err = h.svc.ListClaims(c.Request().Context(), pg.Limit, pg.Offset)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) QueueReport(c echo.Context) error {
	var rep GovernmentReport
	if err := c.Bind(&rep); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.QueueReport(c.Request().Context(), &rep); err != nil {
		return billingHTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"id": rep.ID})
}

func (h *Handler) GetReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rep, err := h.svc.GetReport(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "government report not found")
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) UpdateReportStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateReportStatus(c.Request().Context(), id, body.Status); err != nil {
		return billingHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": body.Status})
}

func (h *Handler) ListReports(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListReports(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
