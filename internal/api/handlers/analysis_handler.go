// backend-go/internal/api/handlers/analysis_handler.go
package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/dataset"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/pipeline"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/service"
)

// AnalysisHandler exposes the pipeline to the dashboard frontend. Inputs
// arrive as multipart CSV uploads (or fall back to the bundled sample data);
// every request is a stateless, full recomputation.
type AnalysisHandler struct {
	service *service.AnalysisService
	samples *dataset.SampleLoader
}

func NewAnalysisHandler(svc *service.AnalysisService, samples *dataset.SampleLoader) *AnalysisHandler {
	return &AnalysisHandler{service: svc, samples: samples}
}

// Analyze runs the full pipeline and returns the result bundle as JSON.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	warehouse, orders, ok := h.loadTables(c)
	if !ok {
		return
	}

	result, err := h.service.AnalyzeTables(c.Request.Context(), warehouse, orders)
	if err != nil {
		h.renderAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Scenario runs baseline plus a perturbed what-if and returns both.
func (h *AnalysisHandler) Scenario(c *gin.Context) {
	warehouse, orders, ok := h.loadTables(c)
	if !ok {
		return
	}

	valid, messages := pipeline.Validate(warehouse, orders)
	if !valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": messages})
		return
	}

	warehouseRecords, err := dataset.DecodeWarehouse(warehouse)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	orderRecords, err := dataset.DecodeOrders(orders)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	params := domain.ScenarioParams{Seed: service.DefaultScenarioSeed}
	if v := strings.TrimSpace(c.Query("demand_pct")); v != "" {
		if params.DemandChangePct, err = strconv.ParseFloat(v, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid demand_pct"})
			return
		}
	}
	if v := strings.TrimSpace(c.Query("cost_pct")); v != "" {
		if params.CostChangePct, err = strconv.ParseFloat(v, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cost_pct"})
			return
		}
	}
	if v := strings.TrimSpace(c.Query("seed")); v != "" {
		if params.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seed"})
			return
		}
	}

	result, err := h.service.CompareScenario(c.Request.Context(), warehouseRecords, orderRecords, params)
	if err != nil {
		h.renderAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportRecommendations runs the pipeline and streams the recommendation
// table as a CSV download.
func (h *AnalysisHandler) ExportRecommendations(c *gin.Context) {
	warehouse, orders, ok := h.loadTables(c)
	if !ok {
		return
	}

	result, err := h.service.AnalyzeTables(c.Request.Context(), warehouse, orders)
	if err != nil {
		h.renderAnalysisError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transfer_recommendations.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := dataset.WriteRecommendations(c.Writer, result.Recommendations); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// InvalidateCache drops all cached analysis results.
func (h *AnalysisHandler) InvalidateCache(c *gin.Context) {
	h.samples.Invalidate()
	if err := h.service.InvalidateCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}

// loadTables parses the uploaded CSV pair, or loads the sample data when the
// request carries no files. Writes the error response itself on failure.
func (h *AnalysisHandler) loadTables(c *gin.Context) (warehouse, orders *dataset.Table, ok bool) {
	warehouseFile, werr := c.FormFile("warehouse")
	ordersFile, oerr := c.FormFile("orders")

	if werr != nil && oerr != nil {
		w, o, err := h.samples.LoadSampleData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded and sample data unavailable: " + err.Error()})
			return nil, nil, false
		}
		return w, o, true
	}
	if werr != nil || oerr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both warehouse and orders files are required"})
		return nil, nil, false
	}

	warehouse, err := readUpload(warehouseFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "warehouse file: " + err.Error()})
		return nil, nil, false
	}
	orders, err = readUpload(ordersFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orders file: " + err.Error()})
		return nil, nil, false
	}
	return warehouse, orders, true
}

func (h *AnalysisHandler) renderAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, pipeline.ErrNoPressureRows):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "warehouse table has no rows to analyze"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func readUpload(fh *multipart.FileHeader) (*dataset.Table, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dataset.FromReader(f)
}
