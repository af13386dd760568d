package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oltcmd/oltcmd/internal/service"
)

func runCLI(t *testing.T, dir string, clip service.Clipboard, args ...string) (string, error) {
	t.Helper()
	t.Setenv("OLTCMD_PATHS_BASE_DIR", dir)
	t.Setenv("OLTCMD_LOG_OUTPUT", "none")
	t.Setenv("OLTCMD_PREFERENCES_SAVE_DELAY", "0s")

	a := &app{clipboard: clip, theme: "light"}
	root := a.rootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	a.close()
	return out.String(), err
}

func TestVendorsCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, &service.MemoryClipboard{}, "vendors")
	require.NoError(t, err)
	assert.Contains(t, out, "ZTE Z600 Itaum")
	assert.Contains(t, out, "Huawei MA5800 Araquari")
	assert.Less(t, strings.Index(out, "ZTE Z600 Itaum"), strings.Index(out, "Huawei MA5800 Araquari"))

	_, err = os.Stat(filepath.Join(dir, "olt_data.json"))
	assert.NoError(t, err)
}

func TestResolveCopyCommand(t *testing.T) {
	dir := t.TempDir()
	clip := &service.MemoryClipboard{}
	out, err := runCLI(t, dir, clip, "resolve", "ZTE C300 Ullyses",
		"Gerenciamento de ONU > Consultar ONU > Detalhes da ONU", "--pon-id", "1/2/3", "--copy")
	require.NoError(t, err)
	assert.Contains(t, out, "show gpon onu detail-info gpon-olt_1/2/3")

	text, _ := clip.ReadAll()
	assert.Equal(t, "show gpon onu detail-info gpon-olt_1/2/3", text)

	out, err = runCLI(t, dir, clip, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "gpon-olt_1/2/3")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, &service.MemoryClipboard{}, "validate", "slot=1", "id=7")
	assert.NoError(t, err)

	out, err := runCLI(t, dir, &service.MemoryClipboard{}, "validate", "slot=abc")
	assert.Error(t, err)
	assert.Contains(t, out, "Formato inválido para slot")
}

func TestFavCommands(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, &service.MemoryClipboard{}, "fav", "add", "ZTE C300 Ullyses", "Diagnóstico", "Alarmes")
	require.NoError(t, err)

	out, err := runCLI(t, dir, &service.MemoryClipboard{}, "fav", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "show alarm active")

	out, err = runCLI(t, dir, &service.MemoryClipboard{}, "fav", "rm", "show alarm active")
	require.NoError(t, err)
	assert.Contains(t, out, "1 favorito(s) removido(s)")
}

func TestConvertONUCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "onus.txt")
	require.NoError(t, os.WriteFile(in, []byte("gpon-onu_1/2/3:4  enable  working\n"), 0o644))

	out, err := runCLI(t, dir, &service.MemoryClipboard{}, "convert-onu", in)
	require.NoError(t, err)
	assert.Contains(t, out, "interface gpon-olt_1/2/3\nno onu 4\nexit")
}

func TestCatalogImportCommand(t *testing.T) {
	dir := t.TempDir()
	jsonFile := filepath.Join(dir, "novo.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(`{"olts": {"Fiberhome AN5516": {"description": "OLT FIBERHOME", "categories": {"Sistema": "show version"}}}}`), 0o644))

	_, err := runCLI(t, dir, &service.MemoryClipboard{}, "catalog", "import", jsonFile)
	require.NoError(t, err)
	out, err := runCLI(t, dir, &service.MemoryClipboard{}, "vendors")
	require.NoError(t, err)
	assert.Contains(t, out, "Fiberhome AN5516")
	assert.NotContains(t, out, "Huawei MA5800 Araquari")

	yamlOut, err := runCLI(t, dir, &service.MemoryClipboard{}, "catalog", "export", "--format", "yaml")
	require.NoError(t, err)
	yamlFile := filepath.Join(dir, "catalogo.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte(strings.Replace(yamlOut, "OLT FIBERHOME", "OLT FIBERHOME AN5516", 1)), 0o644))

	_, err = runCLI(t, dir, &service.MemoryClipboard{}, "catalog", "import", yamlFile)
	require.NoError(t, err)
	out, err = runCLI(t, dir, &service.MemoryClipboard{}, "vendors")
	require.NoError(t, err)
	assert.Contains(t, out, "OLT FIBERHOME AN5516")
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, splitPath([]string{"A > B"}))
	assert.Equal(t, []string{"A", "B"}, splitPath([]string{"A", "B"}))
}
