package olt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oltcmd/oltcmd/addone/olt"
	_ "github.com/oltcmd/oltcmd/addone/olt/platforms"
	"github.com/oltcmd/oltcmd/internal/model"
)

func TestDefaultCatalogOrder(t *testing.T) {
	c := olt.DefaultCatalog()
	assert.Equal(t, []string{"ZTE Z600 Itaum", "ZTE C300 Ullyses", "Huawei MA5800 Araquari"}, c.VendorNames())

	v, ok := c.Vendor("ZTE C300 Ullyses")
	require.True(t, ok)
	assert.Equal(t, "OLT ZTE ULLYSES", v.Description)
	assert.Equal(t, []string{"Gerenciamento de ONU", "Diagnóstico"}, v.Categories.Labels())
}

func TestPluginsReturnFreshTrees(t *testing.T) {
	p, ok := olt.Get("zte_c300")
	require.True(t, ok)

	a := p.Categories()
	a.Set("extra", model.Leaf("x"))
	b := p.Categories()
	_, found := b.Child("extra")
	assert.False(t, found)
}

func TestSequenceLeaves(t *testing.T) {
	c := olt.DefaultCatalog()
	v, _ := c.Vendor("Huawei MA5800 Araquari")
	grp, ok := v.Categories.Child("Gerenciamento de ONU")
	require.True(t, ok)
	rm, ok := grp.Child("Remover ONU")
	require.True(t, ok)
	del, ok := rm.Child("Excluir ONU")
	require.True(t, ok)
	assert.Equal(t, model.KindSequence, del.Kind)
	assert.Equal(t, "config\ninterface gpon {slot}/{porta}\nont delete {pon} {id}\nquit\nquit\nsave", del.Text())
}

func TestRegisterKeepsOrderOnReplace(t *testing.T) {
	names := olt.Names()
	require.NotEmpty(t, names)
	p, _ := olt.Get(names[0])
	olt.Register(names[0], p)
	assert.Equal(t, names, olt.Names())
}

func TestEveryLeafHasCommand(t *testing.T) {
	for _, v := range olt.DefaultCatalog().Vendors {
		count := 0
		v.Categories.Walk(func(path []string, leaf *model.Node) bool {
			count++
			assert.NotEmpty(t, leaf.Text(), "%s %v", v.Name, path)
			return true
		})
		assert.Greater(t, count, 5, v.Name)
	}
}
