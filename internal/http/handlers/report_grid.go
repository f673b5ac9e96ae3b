package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	"github.com/yungbote/waltz-backend/internal/http/response"
	"github.com/yungbote/waltz-backend/internal/platform/ctxutil"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
	"github.com/yungbote/waltz-backend/internal/services"
)

type ReportGridHandler struct {
	log   *logger.Logger
	grids services.ReportGridService
}

func NewReportGridHandler(log *logger.Logger, grids services.ReportGridService) *ReportGridHandler {
	return &ReportGridHandler{log: log.With("handler", "ReportGridHandler"), grids: grids}
}

type replaceColumnsRequest struct {
	FixedColumns   []rg.FixedColumn   `json:"fixed_column_definitions"`
	DerivedColumns []rg.DerivedColumn `json:"derived_column_definitions"`
}

func gridIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_grid_id", fmt.Errorf("invalid grid id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

// gridRef reads either :id or :extId.
func gridRef(c *gin.Context) (rg.GridRef, bool) {
	if ext := strings.TrimSpace(c.Param("extId")); ext != "" {
		return rg.ByExternalID(ext), true
	}
	id, ok := gridIDParam(c)
	if !ok {
		return rg.GridRef{}, false
	}
	return rg.ByID(id), true
}

// GET /api/report-grid
func (h *ReportGridHandler) ListAll(c *gin.Context) {
	grids, err := h.grids.ListAll(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "list_grids_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"grids": grids})
}

// GET /api/report-grid/mine
func (h *ReportGridHandler) ListForUser(c *gin.Context) {
	grids, err := h.grids.ListForUser(c.Request.Context(), ctxutil.Username(c.Request.Context()))
	if err != nil {
		response.RespondServiceError(c, "list_grids_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"grids": grids})
}

// GET /api/report-grid/owned
func (h *ReportGridHandler) ListForOwner(c *gin.Context) {
	grids, err := h.grids.ListForOwner(c.Request.Context(), ctxutil.Username(c.Request.Context()))
	if err != nil {
		response.RespondServiceError(c, "list_grids_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"grids": grids})
}

// POST /api/report-grid
func (h *ReportGridHandler) Create(c *gin.Context) {
	var cmd services.CreateCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	def, err := h.grids.Create(c.Request.Context(), ctxutil.Username(c.Request.Context()), cmd)
	if err != nil {
		response.RespondServiceError(c, "create_grid_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"definition": def})
}

// PUT /api/report-grid/id/:id
func (h *ReportGridHandler) Update(c *gin.Context) {
	id, ok := gridIDParam(c)
	if !ok {
		return
	}
	var cmd services.UpdateCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	def, err := h.grids.Update(c.Request.Context(), id, ctxutil.Username(c.Request.Context()), cmd)
	if err != nil {
		response.RespondServiceError(c, "update_grid_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"definition": def})
}

// DELETE /api/report-grid/id/:id
func (h *ReportGridHandler) Remove(c *gin.Context) {
	id, ok := gridIDParam(c)
	if !ok {
		return
	}
	if err := h.grids.Remove(c.Request.Context(), id, ctxutil.Username(c.Request.Context())); err != nil {
		response.RespondServiceError(c, "remove_grid_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"removed": true})
}

// GET /api/report-grid/id/:id/definition
// GET /api/report-grid/external-id/:extId/definition
func (h *ReportGridHandler) GetDefinition(c *gin.Context) {
	ref, ok := gridRef(c)
	if !ok {
		return
	}
	def, err := h.grids.GetDefinition(c.Request.Context(), ref)
	if err != nil {
		response.RespondServiceError(c, "get_definition_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"definition": def})
}

// POST /api/report-grid/id/:id/view
// POST /api/report-grid/external-id/:extId/view
func (h *ReportGridHandler) View(c *gin.Context) {
	ref, ok := gridRef(c)
	if !ok {
		return
	}
	var opts services.SelectionOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_selection", err)
		return
	}
	inst, err := h.grids.View(c.Request.Context(), ref, opts)
	if err != nil {
		response.RespondServiceError(c, "view_grid_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"instance": inst})
}

// PUT /api/report-grid/id/:id/columns
func (h *ReportGridHandler) ReplaceColumns(c *gin.Context) {
	id, ok := gridIDParam(c)
	if !ok {
		return
	}
	var req replaceColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	def, err := h.grids.ReplaceColumns(c.Request.Context(), id, ctxutil.Username(c.Request.Context()), req.FixedColumns, req.DerivedColumns)
	if err != nil {
		response.RespondServiceError(c, "replace_columns_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"definition": def})
}

// GET /api/report-grid/field-references
func (h *ReportGridHandler) ListFieldReferences(c *gin.Context) {
	refs, err := h.grids.ListFieldReferences(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "list_field_references_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"field_references": refs})
}

// GET /api/report-grid/attestation-qualifiers
func (h *ReportGridHandler) ListAttestationQualifiers(c *gin.Context) {
	qs, err := h.grids.ListAttestationQualifiers(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "list_attestation_qualifiers_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"qualifiers": qs})
}
