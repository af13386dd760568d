package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oltcmd/oltcmd/internal/service"
	"github.com/oltcmd/oltcmd/pkg/logger"
)

// WorkbenchHandler 命令工作台处理器
type WorkbenchHandler struct {
	workbench *service.Workbench
}

// NewWorkbenchHandler 创建处理器
func NewWorkbenchHandler(w *service.Workbench) *WorkbenchHandler {
	return &WorkbenchHandler{workbench: w}
}

type selectRequest struct {
	Vendor string   `json:"vendor" binding:"required"`
	Path   []string `json:"path" binding:"required"`
}

type validateRequest struct {
	Values map[string]string `json:"values"`
}

type onuRemovalRequest struct {
	Input string `json:"input"`
}

// Health 健康检查
func (h *WorkbenchHandler) Health(c *gin.Context) {
	stats := h.workbench.Stats()
	if !h.workbench.Running() {
		fail(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "workbench not running")
		return
	}
	ok(c, stats)
}

// ListVendors GET /api/v1/vendors
func (h *WorkbenchHandler) ListVendors(c *gin.Context) {
	ok(c, h.workbench.Vendors())
}

// VendorTree GET /api/v1/vendors/:vendor/tree
func (h *WorkbenchHandler) VendorTree(c *gin.Context) {
	tree, err := h.workbench.Tree(c.Param("vendor"))
	if err != nil {
		catalogError(c, err)
		return
	}
	ok(c, tree)
}

// VendorTips GET /api/v1/vendors/:vendor/tips
func (h *WorkbenchHandler) VendorTips(c *gin.Context) {
	ok(c, h.workbench.Tips(c.Param("vendor")))
}

// Select POST /api/v1/commands/select
func (h *WorkbenchHandler) Select(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}
	sel, err := h.workbench.Select(req.Vendor, req.Path)
	if err != nil {
		catalogError(c, err)
		return
	}
	ok(c, sel)
}

// Preview POST /api/v1/commands/preview
func (h *WorkbenchHandler) Preview(c *gin.Context) {
	var req service.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}
	ok(c, h.workbench.Preview(req))
}

// Validate POST /api/v1/commands/validate
func (h *WorkbenchHandler) Validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}
	errs := h.workbench.Validate(req.Values)
	ok(c, gin.H{"valid": len(errs) == 0, "errors": errs})
}

// Copy POST /api/v1/commands/copy
func (h *WorkbenchHandler) Copy(c *gin.Context) {
	var req service.CopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}
	entry, err := h.workbench.Copy(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCommand) {
			fail(c, http.StatusBadRequest, "EMPTY_COMMAND", err.Error())
			return
		}
		logger.Component("api").Warnf("copy failed: %v", err)
		fail(c, http.StatusInternalServerError, "CLIPBOARD_ERROR", err.Error())
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Code: "SUCCESS", Message: "Comando copiado para a área de transferência!", Data: entry})
}

// Search GET /api/v1/search?q=
func (h *WorkbenchHandler) Search(c *gin.Context) {
	ok(c, h.workbench.Search(c.Query("q")))
}

// History GET /api/v1/history?limit=
func (h *WorkbenchHandler) History(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, "INVALID_PARAMS", "limit must be an integer")
			return
		}
		limit = n
	}
	ok(c, h.workbench.History(limit))
}

// ClearHistory DELETE /api/v1/history
func (h *WorkbenchHandler) ClearHistory(c *gin.Context) {
	h.workbench.ClearHistory()
	ok(c, nil)
}

// ListFavorites GET /api/v1/favorites
func (h *WorkbenchHandler) ListFavorites(c *gin.Context) {
	ok(c, h.workbench.Favorites())
}

// AddFavorite POST /api/v1/favorites
func (h *WorkbenchHandler) AddFavorite(c *gin.Context) {
	var req service.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}
	fav, err := h.workbench.AddFavorite(req)
	if err != nil {
		fail(c, http.StatusBadRequest, "EMPTY_COMMAND", err.Error())
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Code: "SUCCESS", Message: "Comando adicionado aos favoritos!", Data: fav})
}

// RemoveFavorite DELETE /api/v1/favorites?command=|id=
func (h *WorkbenchHandler) RemoveFavorite(c *gin.Context) {
	command, id := c.Query("command"), c.Query("id")
	if command == "" && id == "" {
		fail(c, http.StatusBadRequest, "INVALID_PARAMS", "command or id is required")
		return
	}
	ok(c, gin.H{"removed": h.workbench.RemoveFavorite(command, id)})
}

// CatalogRaw GET /api/v1/catalog/raw
func (h *WorkbenchHandler) CatalogRaw(c *gin.Context) {
	text, err := h.workbench.CatalogRaw()
	if err != nil {
		catalogError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(text))
}

// SaveCatalogRaw PUT /api/v1/catalog/raw
func (h *WorkbenchHandler) SaveCatalogRaw(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		fail(c, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}
	if err := h.workbench.SaveCatalogText(c.Request.Context(), string(body)); err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Code: "SUCCESS", Message: "Dados salvos com sucesso!"})
}

// ReloadCatalog POST /api/v1/catalog/reload
func (h *WorkbenchHandler) ReloadCatalog(c *gin.Context) {
	if err := h.workbench.ReloadCatalog(); err != nil {
		catalogError(c, err)
		return
	}
	ok(c, h.workbench.Vendors())
}

// ExportCatalog GET /api/v1/catalog/export?format=json|yaml
func (h *WorkbenchHandler) ExportCatalog(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	var sb strings.Builder
	if err := h.workbench.ExportCatalog(&sb, format); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_FORMAT", err.Error())
		return
	}
	contentType := "application/json; charset=utf-8"
	if format == "yaml" || format == "yml" {
		contentType = "application/yaml; charset=utf-8"
	}
	c.Data(http.StatusOK, contentType, []byte(sb.String()))
}

// ONURemoval POST /api/v1/tools/onu-removal
func (h *WorkbenchHandler) ONURemoval(c *gin.Context) {
	var req onuRemovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}
	ok(c, gin.H{"commands": h.workbench.ConvertONURemoval(req.Input)})
}

// GetPreferences GET /api/v1/preferences
func (h *WorkbenchHandler) GetPreferences(c *gin.Context) {
	ok(c, h.workbench.Preferences())
}

// UpdatePreferences PUT /api/v1/preferences
func (h *WorkbenchHandler) UpdatePreferences(c *gin.Context) {
	var req service.PreferencesPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}
	ok(c, h.workbench.UpdatePreferences(req))
}

// ParamHelp GET /api/v1/docs/params/:param
func (h *WorkbenchHandler) ParamHelp(c *gin.Context) {
	param := c.Param("param")
	ok(c, gin.H{"param": param, "help": h.workbench.ParamHelp(param)})
}
