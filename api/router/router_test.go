package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/oltcmd/oltcmd/addone/olt/platforms"
	"github.com/oltcmd/oltcmd/internal/config"
	"github.com/oltcmd/oltcmd/internal/service"
)

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *service.MemoryClipboard) {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.BaseDir = t.TempDir()
	cfg.Watch.Enabled = false
	cfg.Preferences.SaveDelay = 0

	clip := &service.MemoryClipboard{}
	reg := prometheus.NewRegistry()
	w, err := service.NewWorkbench(cfg, service.WithClipboard(clip), service.WithRegisterer(reg))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { _ = w.Stop() })
	return SetupRouter(gin.TestMode, w, reg), clip
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestHealthAndRequestID(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestVendorsAndTree(t *testing.T) {
	r, _ := newTestRouter(t)

	var vendors []service.VendorInfo
	decode(t, do(r, http.MethodGet, "/api/v1/vendors", nil), &vendors)
	require.Len(t, vendors, 3)
	assert.Equal(t, "ZTE Z600 Itaum", vendors[0].Name)

	rec := do(r, http.MethodGet, "/api/v1/vendors/Desconhecido/tree", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPreviewAndCopy(t *testing.T) {
	r, clip := newTestRouter(t)

	var res service.PreviewResult
	rec := do(r, http.MethodPost, "/api/v1/commands/preview", map[string]interface{}{
		"template": "show gpon onu detail-info gpon-olt_{slot}/{porta}/{pon}",
		"pon_id":   "1/1/4",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &res)
	assert.Equal(t, "show gpon onu detail-info gpon-olt_1/1/4", res.Command)

	rec = do(r, http.MethodPost, "/api/v1/commands/copy", map[string]interface{}{
		"command": res.Command,
		"vendor":  "ZTE C300 Ullyses",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	text, _ := clip.ReadAll()
	assert.Equal(t, res.Command, text)

	rec = do(r, http.MethodGet, "/api/v1/history?limit=5", nil)
	assert.Contains(t, rec.Body.String(), "gpon-olt_1/1/4")

	rec = do(r, http.MethodGet, "/api/v1/history?limit=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSelectNotLeaf(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodPost, "/api/v1/commands/select", map[string]interface{}{
		"vendor": "ZTE C300 Ullyses",
		"path":   []string{"Gerenciamento de ONU"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFavoritesLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodPost, "/api/v1/favorites", map[string]interface{}{
		"name":    "Alarmes",
		"command": "show alarm active",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(r, http.MethodDelete, "/api/v1/favorites?command="+strings.ReplaceAll("show alarm active", " ", "%20"), nil)
	var removed map[string]int
	decode(t, rec, &removed)
	assert.Equal(t, 1, removed["removed"])

	rec = do(r, http.MethodDelete, "/api/v1/favorites", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveCatalogRawRejectsInvalidJSON(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/catalog/raw", strings.NewReader(`{"olts": `))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec, nil)
	assert.Equal(t, "INVALID_CATALOG", env.Code)
	assert.True(t, strings.HasPrefix(env.Message, "JSON inválido"))
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "oltcmd_catalog_vendors 3")
}
