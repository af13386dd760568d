package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlaceholders(t *testing.T) {
	tpl := "remote-unit update-and-reboot {firmware} gpon_olt-{slot}/{porta}/{pon} {id} {slot}"
	assert.Equal(t, []string{"firmware", "slot", "porta", "pon", "id"}, ExtractPlaceholders(tpl))
	assert.Empty(t, ExtractPlaceholders("show version"))
	assert.Empty(t, ExtractPlaceholders("{ slot } {} {a-b}"))
}

func TestExtractAccentedPlaceholders(t *testing.T) {
	tpl := "interface gpon-onu_{slot}/{porta}/{pon}:{id} vlan {vlan} descrição {descrição}"
	assert.Equal(t, []string{"slot", "porta", "pon", "id", "vlan", "descrição"}, ExtractPlaceholders(tpl))

	out := Resolve(tpl, map[string]string{"descrição": "cliente_01", "vlan": "100"})
	assert.Equal(t, "interface gpon-onu_{slot}/{porta}/{pon}:{id} vlan 100 descrição cliente_01", out)
	assert.Equal(t, []string{"slot", "porta", "pon", "id"}, Unresolved(out))
}

func TestResolveLeavesMissingAndEmpty(t *testing.T) {
	tpl := "show gpon onu detail-info gpon-olt_{slot}/{porta}/{pon} {id}"
	out := Resolve(tpl, map[string]string{"slot": "1", "porta": "2", "pon": "", "extra": "x"})
	assert.Equal(t, "show gpon onu detail-info gpon-olt_1/2/{pon} {id}", out)
	assert.Equal(t, []string{"pon", "id"}, Unresolved(out))
}

func TestResolveFullyResolvedHasNoPlaceholders(t *testing.T) {
	tpl := "display ont info by-sn {sn}"
	out := Resolve(tpl, map[string]string{"sn": "HWTC12345678"})
	assert.Equal(t, "display ont info by-sn HWTC12345678", out)
	assert.Empty(t, ExtractPlaceholders(out))
}

func TestResolveCustomNames(t *testing.T) {
	out := Resolve("vlan {vlan} user {user} onu {id}", map[string]string{"vlan": "100", "user": "joao", "id": "7"})
	assert.Equal(t, "vlan 100 user joao onu 7", out)
}

func TestSubstitutionOrder(t *testing.T) {
	values := map[string]string{"zeta": "", "mac": "", "alpha": "", "slot": "", "firmware": "", "index": ""}
	assert.Equal(t, []string{"firmware", "slot", "mac", "index", "alpha", "zeta"}, SubstitutionOrder(values))
}

func TestParseComposite(t *testing.T) {
	parts, err := ParseComposite("1/2/2")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"slot": "1", "porta": "2", "pon": "2"}, parts)

	parts, err = ParseComposite(" 10 / 16 / 8 ")
	require.NoError(t, err)
	assert.Equal(t, "16", parts["porta"])

	for _, bad := range []string{"1/2", "1/2/3/4", "a/b/c", "1//2", "123/1/1", ""} {
		_, err := ParseComposite(bad)
		assert.ErrorIs(t, err, ErrCompositeFormat, bad)
	}
}

func TestHasComposite(t *testing.T) {
	assert.True(t, HasComposite([]string{"pon", "slot", "id", "porta"}))
	assert.False(t, HasComposite([]string{"slot", "porta"}))
}
