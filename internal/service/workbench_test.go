package service

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/oltcmd/oltcmd/addone/olt/platforms"
	"github.com/oltcmd/oltcmd/internal/config"
	"github.com/oltcmd/oltcmd/internal/resolver"
)

const c300 = "ZTE C300 Ullyses"

func newTestWorkbench(t *testing.T) (*Workbench, *MemoryClipboard, *prometheus.Registry) {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.BaseDir = t.TempDir()
	cfg.Watch.Enabled = false
	cfg.Preferences.SaveDelay = 0

	clip := &MemoryClipboard{}
	reg := prometheus.NewRegistry()
	w, err := NewWorkbench(cfg, WithClipboard(clip), WithRegisterer(reg))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { _ = w.Stop() })
	return w, clip, reg
}

func TestWorkbenchStartWritesDefaultCatalog(t *testing.T) {
	w, _, _ := newTestWorkbench(t)

	vendors := w.Vendors()
	require.Len(t, vendors, 3)
	assert.Equal(t, "ZTE Z600 Itaum", vendors[0].Name)
	assert.Equal(t, c300, vendors[1].Name)

	_, err := os.Stat(w.Catalog().Path())
	assert.NoError(t, err)
}

func TestWorkbenchSelectComposite(t *testing.T) {
	w, _, _ := newTestWorkbench(t)

	sel, err := w.Select(c300, []string{"Gerenciamento de ONU", "Atualizar ONU", "Atualizar firmware"})
	require.NoError(t, err)
	assert.Equal(t, "Gerenciamento de ONU > Atualizar ONU > Atualizar firmware", sel.Breadcrumb)
	assert.True(t, sel.Form.Composite)
	assert.True(t, sel.Form.FirmwareSelector)
	assert.Equal(t, []string{"ZTE F601", "ONU FAST"}, sel.FirmwareModels)
	assert.NotEmpty(t, sel.Tips)
	assert.False(t, sel.IsFavorite)
}

func TestWorkbenchSelectGroupIsNotLeaf(t *testing.T) {
	w, _, _ := newTestWorkbench(t)
	_, err := w.Select(c300, []string{"Gerenciamento de ONU"})
	assert.Error(t, err)
}

func TestWorkbenchPreview(t *testing.T) {
	w, _, _ := newTestWorkbench(t)
	tpl := "cpe update-and-reboot {firmware} gpon-olt_{slot}/{porta}/{pon} {id}"

	res := w.Preview(PreviewRequest{Template: tpl, PonID: "1/2/3", Values: map[string]string{"id": " 7 "}})
	assert.Equal(t, "cpe update-and-reboot F601P1N34.bin gpon-olt_1/2/3 7", res.Command)
	assert.True(t, res.Complete)
	assert.Empty(t, res.Errors)

	res = w.Preview(PreviewRequest{Template: tpl, PonID: "1/2", Values: map[string]string{"id": "abcd"}, ONUModel: "ONU FAST"})
	assert.Equal(t, "cpe update-and-reboot F10-G10-NW_1.6.0.bin gpon-olt_{slot}/{porta}/{pon} abcd", res.Command)
	assert.Equal(t, []string{resolver.CompositeHint}, res.Hints)
	assert.Equal(t, []string{"Formato inválido para id"}, res.Errors)
	assert.Equal(t, []string{"slot", "porta", "pon"}, res.Unresolved)
	assert.False(t, res.Complete)

	assert.Equal(t, 2.0, testutil.ToFloat64(w.metrics.previews))
	assert.Equal(t, 1.0, testutil.ToFloat64(w.metrics.validationErrors.WithLabelValues("id")))
}

func TestWorkbenchCopyRecordsHistory(t *testing.T) {
	w, clip, _ := newTestWorkbench(t)

	_, err := w.Copy(context.Background(), CopyRequest{Command: "show gpon onu by sn ZTEG12345678", Vendor: c300, Path: []string{"Gerenciamento de ONU", "Consultar ONU", "Por Serial Number"}})
	require.NoError(t, err)

	text, _ := clip.ReadAll()
	assert.Equal(t, "show gpon onu by sn ZTEG12345678", text)

	hist := w.History(0)
	require.Len(t, hist, 1)
	assert.Equal(t, c300, hist[0].OLTModel)
	assert.Equal(t, "Gerenciamento de ONU > Consultar ONU > Por Serial Number", hist[0].Category)

	_, err = w.Copy(context.Background(), CopyRequest{Command: "  "})
	assert.ErrorIs(t, err, ErrEmptyCommand)

	w.ClearHistory()
	assert.Empty(t, w.History(0))
}

func TestWorkbenchCopyMetricsBoundVendorLabel(t *testing.T) {
	w, _, _ := newTestWorkbench(t)
	ctx := context.Background()

	_, err := w.Copy(ctx, CopyRequest{Command: "show alarm active", Vendor: c300})
	require.NoError(t, err)
	for _, v := range []string{"x1", "x2", ""} {
		_, err = w.Copy(ctx, CopyRequest{Command: "show alarm active", Vendor: v})
		require.NoError(t, err)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(w.metrics.copies.WithLabelValues(c300)))
	assert.Equal(t, 3.0, testutil.ToFloat64(w.metrics.copies.WithLabelValues(otherVendorLabel)))
	assert.Equal(t, 2, testutil.CollectAndCount(w.metrics.copies))
}

func TestWorkbenchFavorites(t *testing.T) {
	w, _, _ := newTestWorkbench(t)
	path := []string{"Gerenciamento de ONU", "Consultar ONU", "Por Serial Number"}

	fav, err := w.AddFavorite(FavoriteRequest{Command: "show gpon onu by sn {sn}", Vendor: c300, Path: path, Params: map[string]string{"sn": "ZTEG1", "id": " "}})
	require.NoError(t, err)
	assert.Equal(t, "Por Serial Number", fav.Name)
	assert.Equal(t, map[string]string{"sn": "ZTEG1"}, fav.Params)
	assert.NotEmpty(t, fav.ID)

	sel, err := w.Select(c300, path)
	require.NoError(t, err)
	assert.True(t, sel.IsFavorite)

	_, err = w.AddFavorite(FavoriteRequest{Name: "outro", Command: "show gpon onu by sn {sn}"})
	require.NoError(t, err)
	assert.Equal(t, 2, w.RemoveFavorite("show gpon onu by sn {sn}", ""))
	assert.Empty(t, w.Favorites())

	fav, _ = w.AddFavorite(FavoriteRequest{Name: "x", Command: "show alarm active"})
	assert.Equal(t, 0, w.RemoveFavorite("", "missing"))
	assert.Equal(t, 1, w.RemoveFavorite("", fav.ID))
}

func TestWorkbenchSaveCatalogText(t *testing.T) {
	w, _, _ := newTestWorkbench(t)

	err := w.SaveCatalogText(context.Background(), `{"olts": {`)
	require.Error(t, err)
	assert.Len(t, w.Vendors(), 3)

	err = w.SaveCatalogText(context.Background(), `{"olts": {"Teste": {"description": "d", "categories": {"A": "cmd {id}"}}}}`)
	require.NoError(t, err)
	require.Len(t, w.Vendors(), 1)
	assert.Equal(t, "Teste", w.Vendors()[0].Name)

	assert.Equal(t, 1.0, testutil.ToFloat64(w.metrics.catalogSaves.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(w.metrics.catalogSaves.WithLabelValues("rejected")))
}

func TestWorkbenchExportImportYAML(t *testing.T) {
	w, _, _ := newTestWorkbench(t)

	var buf bytes.Buffer
	require.NoError(t, w.ExportCatalog(&buf, "yaml"))
	assert.Contains(t, buf.String(), "ZTE C300 Ullyses:")

	require.NoError(t, w.ImportCatalogYAML(context.Background(), buf.Bytes()))
	assert.Len(t, w.Vendors(), 3)

	assert.Error(t, w.ExportCatalog(&buf, "xml"))
}

func TestWorkbenchPreferences(t *testing.T) {
	w, _, _ := newTestWorkbench(t)
	theme := "dark"
	p := w.UpdatePreferences(PreferencesPatch{Theme: &theme})
	assert.Equal(t, "dark", p.Theme)
	assert.Equal(t, "dark", w.Preferences().Theme)
}

func TestWorkbenchStateMetrics(t *testing.T) {
	_, _, reg := newTestWorkbench(t)
	n, err := testutil.GatherAndCount(reg, "oltcmd_catalog_vendors", "oltcmd_catalog_commands")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestWorkbenchConvertONURemoval(t *testing.T) {
	w, _, _ := newTestWorkbench(t)
	out := w.ConvertONURemoval("gpon-onu_1/2/3:4 ZTEG1 ready")
	assert.Contains(t, out, "no onu 4")
}
