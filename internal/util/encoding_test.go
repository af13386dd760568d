package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestEnsureUTF8Passthrough(t *testing.T) {
	assert.Equal(t, "", EnsureUTF8(""))
	assert.Equal(t, "Diagnóstico", EnsureUTF8("Diagnóstico"))
}

func TestEnsureUTF8StripsBOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"olts":{}}`)...)
	assert.Equal(t, `{"olts":{}}`, EnsureUTF8Bytes(in))
}

func TestEnsureUTF8Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String("Versão sistema")
	assert.NoError(t, err)
	assert.Equal(t, "Versão sistema", EnsureUTF8(encoded))
}

func TestEnsureUTF8UTF16(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := enc.String("Níveis ópticos")
	assert.NoError(t, err)
	assert.Equal(t, "Níveis ópticos", EnsureUTF8(encoded))
}
