// Package api exposes materials, demands and cut plans over HTTP with gin.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/PipeCut/internal/engine"
	"github.com/piwi3910/PipeCut/internal/export"
	"github.com/piwi3910/PipeCut/internal/importer"
	"github.com/piwi3910/PipeCut/internal/model"
	"github.com/piwi3910/PipeCut/internal/store"
	"github.com/shopspring/decimal"
)

// Store is the persistence the handlers need. *store.Store implements it.
type Store interface {
	Materials(ctx context.Context) ([]model.Material, error)
	CreateMaterial(ctx context.Context, m model.Material) (model.Material, error)
	DeleteMaterial(ctx context.Context, id string) error
	Demands(ctx context.Context) ([]model.Demand, error)
	CreateDemands(ctx context.Context, project, materialID string, length float64, count int) ([]model.Demand, error)
	ImportDemands(ctx context.Context, demands []model.Demand) error
	DeleteDemands(ctx context.Context, ids []string) (int64, error)
	DeleteAllDemands(ctx context.Context) (int64, error)
	Snapshot(ctx context.Context) ([]model.Material, []model.Demand, error)
}

// Handler contains dependencies for the route handlers
type Handler struct {
	Store    Store
	Settings model.CutSettings // Used when a request does not carry its own
}

type createMaterialRequest struct {
	ID           string          `json:"id"`
	Name         string          `json:"name" binding:"required"`
	StockLength  float64         `json:"stock_length" binding:"required,gt=0"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

type createDemandsRequest struct {
	Project    string  `json:"project"`
	MaterialID string  `json:"material_id" binding:"required"`
	Length     float64 `json:"length" binding:"required,gt=0"`
	Count      int     `json:"count"` // Defaults to 1
}

type deleteDemandsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type allocateRequest struct {
	Materials []model.Material   `json:"materials"`
	Demands   []model.Demand     `json:"demands"`
	Settings  *model.CutSettings `json:"settings"`
}

// PlanResponse is the body returned by the plan and allocate endpoints.
type PlanResponse struct {
	Settings   model.CutSettings     `json:"settings"`
	Plan       model.CutPlan         `json:"plan"`
	Statistics model.PlanStatistics  `json:"statistics"`
	Purchase   model.PurchaseSummary `json:"purchase"`
}

// ScenarioResponse summarizes one comparison scenario.
type ScenarioResponse struct {
	Name              string            `json:"name"`
	Settings          model.CutSettings `json:"settings"`
	BinsUsed          int               `json:"bins_used"`
	TotalCuts         int               `json:"total_cuts"`
	Efficiency        float64           `json:"efficiency"`
	WastePercent      float64           `json:"waste_percent"`
	UnassignableCount int               `json:"unassignable_count"`
}

// Router registers all routes on a new gin engine.
func Router(h *Handler) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "PipeCut API"})
	})

	api := r.Group("/api")
	{
		api.GET("/materials", h.ListMaterials)
		api.POST("/materials", h.CreateMaterial)
		api.DELETE("/materials/:id", h.DeleteMaterial)

		api.GET("/demands", h.ListDemands)
		api.POST("/demands", h.CreateDemands)
		api.POST("/demands/import", h.ImportDemands)
		api.DELETE("/demands", h.DeleteDemands)
		api.DELETE("/demands/all", h.DeleteAllDemands)
		api.GET("/demands/groups", h.DemandGroups)

		api.GET("/plan", h.Plan)
		api.GET("/plan/compare", h.Compare)
		api.GET("/plan/export/:format", h.ExportPlan)
		api.POST("/allocate", h.Allocate)
	}
	return r
}

// storeError maps store errors to status codes.
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("store error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// ListMaterials returns all materials in insertion order.
func (h *Handler) ListMaterials(c *gin.Context) {
	materials, err := h.Store.Materials(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

// CreateMaterial adds a material.
func (h *Handler) CreateMaterial(c *gin.Context) {
	var req createMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := model.NewMaterialWithPrice(req.Name, req.StockLength, req.PricePerUnit)
	if req.ID != "" {
		m.ID = req.ID
	}
	m, err := h.Store.CreateMaterial(c.Request.Context(), m)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// DeleteMaterial removes a material and its demands.
func (h *Handler) DeleteMaterial(c *gin.Context) {
	if err := h.Store.DeleteMaterial(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDemands returns all demands in insertion order.
func (h *Handler) ListDemands(c *gin.Context) {
	demands, err := h.Store.Demands(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, demands)
}

// CreateDemands adds count identical demands.
func (h *Handler) CreateDemands(c *gin.Context) {
	var req createDemandsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	demands, err := h.Store.CreateDemands(c.Request.Context(), req.Project, req.MaterialID, req.Length, req.Count)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, demands)
}

// ImportDemands reads an uploaded CSV, XLSX or DXF file ("file" form field)
// and stores the demands it yields. Row errors are reported but do not
// prevent the valid rows from being stored.
func (h *Handler) ImportDemands(c *gin.Context) {
	upload, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	dir, err := os.MkdirTemp("", "pipecut-import-")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(upload.Filename))
	if err := c.SaveUploadedFile(upload, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	ctx := c.Request.Context()
	materials, err := h.Store.Materials(ctx)
	if err != nil {
		storeError(c, err)
		return
	}

	result := importer.ImportFile(path, c.PostForm("project"), materials)
	if err := h.Store.ImportDemands(ctx, result.Demands); err != nil {
		storeError(c, err)
		return
	}

	status := http.StatusCreated
	if len(result.Demands) == 0 {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{
		"imported": len(result.Demands),
		"demands":  result.Demands,
		"errors":   result.Errors,
		"warnings": result.Warnings,
	})
}

// DeleteDemands removes the demands listed in the request body.
func (h *Handler) DeleteDemands(c *gin.Context) {
	var req deleteDemandsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.Store.DeleteDemands(c.Request.Context(), req.IDs)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// DeleteAllDemands empties the demand list.
func (h *Handler) DeleteAllDemands(c *gin.Context) {
	n, err := h.Store.DeleteAllDemands(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// DemandGroups returns the stored demands aggregated by material, project
// and length.
func (h *Handler) DemandGroups(c *gin.Context) {
	demands, err := h.Store.Demands(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.AggregateDemands(demands))
}

// Plan allocates the stored demands with the server settings.
func (h *Handler) Plan(c *gin.Context) {
	materials, demands, err := h.Store.Snapshot(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildPlan(materials, demands, h.Settings))
}

// Compare runs the default what-if scenarios over the stored demands.
func (h *Handler) Compare(c *gin.Context) {
	materials, demands, err := h.Store.Snapshot(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(h.Settings), materials, demands)
	out := make([]ScenarioResponse, len(results))
	for i, r := range results {
		out[i] = ScenarioResponse{
			Name:              r.Scenario.Name,
			Settings:          r.Scenario.Settings,
			BinsUsed:          r.BinsUsed,
			TotalCuts:         r.TotalCuts,
			Efficiency:        r.Stats.Efficiency,
			WastePercent:      r.WastePercent,
			UnassignableCount: r.UnassignableCount,
		}
	}
	c.JSON(http.StatusOK, out)
}

// exporters maps the export route format to a writer and a file name.
var exporters = map[string]struct {
	file  string
	write func(string, export.Report) error
}{
	"pdf":    {"cut-plan.pdf", export.ExportPDF},
	"xlsx":   {"cut-plan.xlsx", export.ExportXLSX},
	"labels": {"cut-labels.pdf", export.ExportLabels},
}

// ExportPlan renders the stored plan as pdf, xlsx or labels and sends it as
// an attachment.
func (h *Handler) ExportPlan(c *gin.Context) {
	exp, ok := exporters[c.Param("format")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown export format"})
		return
	}

	materials, demands, err := h.Store.Snapshot(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}

	dir, err := os.MkdirTemp("", "pipecut-export-")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create export"})
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, exp.file)
	report := export.NewReport("", materials, demands, h.Settings)
	if err := exp.write(path, report); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(path, exp.file)
}

// Allocate plans a posted snapshot without touching the store.
func (h *Handler) Allocate(c *gin.Context) {
	var req allocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := h.Settings
	if req.Settings != nil {
		settings = *req.Settings
	}
	if !settings.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trim and kerf must not be negative"})
		return
	}
	for _, d := range req.Demands {
		if !model.ValidLength(d.Length) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "demand lengths must be positive"})
			return
		}
	}
	for _, m := range req.Materials {
		if !model.ValidLength(m.StockLength) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock lengths must be positive"})
			return
		}
	}

	c.JSON(http.StatusOK, buildPlan(req.Materials, req.Demands, settings))
}

func buildPlan(materials []model.Material, demands []model.Demand, settings model.CutSettings) PlanResponse {
	r := export.NewReport("", materials, demands, settings)
	return PlanResponse{
		Settings:   r.Settings,
		Plan:       r.Plan,
		Statistics: r.Stats,
		Purchase:   r.Purchase,
	}
}
