// Package estimates exposes the dashboard over HTTP with gin.
package estimates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/ecoamp/core/counter"
	"github.com/kilianp07/ecoamp/core/dashboard"
	"github.com/kilianp07/ecoamp/core/estimate"
	"github.com/kilianp07/ecoamp/core/sweep"
)

// Handler serves estimation requests.
type Handler struct {
	dash *dashboard.Dashboard
}

// NewHandler creates a handler backed by d.
func NewHandler(d *dashboard.Dashboard) *Handler {
	return &Handler{dash: d}
}

// rangeResponse adds the display conversions to the range estimate.
type rangeResponse struct {
	estimate.RangeOutput
	Miles        int `json:"miles"`
	HoursAt80Kmh int `json:"hours_at_80kmh"`
}

// Estimate handles POST /api/estimate/:tool
func (h *Handler) Estimate(c *gin.Context) {
	tool, err := dashboard.ParseTool(c.Param("tool"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	switch tool {
	case dashboard.ToolRange:
		var in estimate.RangeInput
		if !bind(c, &in) {
			return
		}
		out, err := h.dash.Range(ctx, in)
		respond(c, rangeResponse{RangeOutput: out, Miles: out.Miles(), HoursAt80Kmh: out.HoursAt80Kmh()}, err)
	case dashboard.ToolSoH:
		var in estimate.SoHInput
		if !bind(c, &in) {
			return
		}
		out, err := h.dash.SoH(ctx, in)
		respond(c, out, err)
	case dashboard.ToolCost:
		var in estimate.CostInput
		if !bind(c, &in) {
			return
		}
		out, err := h.dash.Cost(ctx, in)
		respond(c, out, err)
	case dashboard.ToolRegen:
		var in estimate.RegenInput
		if !bind(c, &in) {
			return
		}
		out, err := h.dash.Regen(ctx, in)
		respond(c, out, err)
	case dashboard.ToolPrice:
		var in estimate.PriceInput
		if !bind(c, &in) {
			return
		}
		out, err := h.dash.Price(ctx, in)
		respond(c, out, err)
	}
}

// GetDashboard handles GET /api/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Summary(c.Request.Context()))
}

// GetCounter handles GET /api/counter
func (h *Handler) GetCounter(c *gin.Context) {
	n := h.dash.Counter().Get(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"count": n, "formatted": counter.Format(n)})
}

// GetSweep handles GET /api/sweep?tool=&param=&from=&to=&steps=
func (h *Handler) GetSweep(c *gin.Context) {
	req := sweep.Request{Tool: c.Query("tool"), Param: c.Query("param")}
	var err error
	if req.From, err = strconv.ParseFloat(c.Query("from"), 64); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a number", "field": "from"})
		return
	}
	if req.To, err = strconv.ParseFloat(c.Query("to"), 64); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be a number", "field": "to"})
		return
	}
	if req.Steps, err = strconv.Atoi(c.DefaultQuery("steps", "10")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "steps must be an integer", "field": "steps"})
		return
	}
	res, err := sweep.Run(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func respond(c *gin.Context, out any, err error) {
	if err == nil {
		c.JSON(http.StatusOK, out)
		return
	}
	var iie *estimate.InvalidInputError
	if errors.As(err, &iie) {
		c.JSON(http.StatusBadRequest, gin.H{"error": iie.Error(), "field": iie.Field})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
