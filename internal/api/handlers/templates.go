package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/udyamlens/udyamlens/internal/analysis"
	"github.com/udyamlens/udyamlens/internal/models"
)

// TemplateHandler serves upload templates so SMEs know exactly which
// columns each vertical expects.
type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// Columns returns the required column list as JSON.
// GET /api/v1/templates/:vertical
func (h *TemplateHandler) Columns(c *gin.Context) {
	vertical, err := models.ParseVertical(c.Param("vertical"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cols := analysis.RequiredColumns(vertical)
	resp := gin.H{
		"vertical": vertical,
		"columns":  cols,
	}
	if vertical == models.VerticalManufacturing {
		resp["overhead"] = gin.H{
			"direct": "overhead_cost",
			"split":  []string{"power_cost", "rent_cost", "maintenance_cost"},
			"note":   "provide overhead_cost or all three split columns",
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Download returns a one-row CSV header template for the vertical.
// GET /api/v1/templates/:vertical/csv
func (h *TemplateHandler) Download(c *gin.Context) {
	vertical, err := models.ParseVertical(c.Param("vertical"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cols := analysis.RequiredColumns(vertical)
	if vertical == models.VerticalManufacturing {
		cols = append(cols, "overhead_cost")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(cols); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build template"})
		return
	}
	w.Flush()

	filename := vertical.Slug() + "_template.csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
