package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/fleetledger/internal/encoding"
)

func decode(t *testing.T, d *encoding.Decoder, input []byte) string {
	t.Helper()

	r, err := d.Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestDecoder_UTF8Passthrough(t *testing.T) {
	input := "Descrição;Montante\nPagamento Renta;12,50\nOperação;-3,00\n"

	assert.Equal(t, input, decode(t, encoding.NewDecoder(), []byte(input)))
}

func TestDecoder_Latin1(t *testing.T) {
	// ç = 0xE7, ã = 0xE3
	latin1 := []byte{
		'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
		'M', 'o', 'n', 't', 'a', 'n', 't', 'e', '\n',
	}

	assert.Equal(t, "Descrição;Montante\n", decode(t, encoding.NewDecoder(), latin1))
}

func TestDecoder_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Descrição;Montante\n")...)

	assert.Equal(t, "Descrição;Montante\n", decode(t, encoding.NewDecoder(), input))
}

func TestDecoder_UTF16LE(t *testing.T) {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("Crédito;10,00\n"))
	require.NoError(t, err)

	assert.Equal(t, "Crédito;10,00\n", decode(t, encoding.NewDecoder(), encoded))
}

func TestDecoder_LongUTF8(t *testing.T) {
	// Multi-byte runes straddle the detection window.
	input := strings.Repeat("ação;", 2000)

	assert.Equal(t, input, decode(t, encoding.NewDecoder(), []byte(input)))
}

func TestDecoder_Empty(t *testing.T) {
	assert.Empty(t, decode(t, encoding.NewDecoder(), nil))
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{name: "windows-1252", ok: true},
		{name: "ISO-8859-15", ok: true},
		{name: " iso-8859-1 ", ok: true},
		{name: "koi8-r", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := encoding.Lookup(tt.name)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestWithFallback(t *testing.T) {
	e, ok := encoding.Lookup("iso-8859-15")
	require.True(t, ok)

	// 0xA4 is the euro sign in ISO-8859-15.
	assert.Equal(t, charmap.ISO8859_15, e)

	d := encoding.NewDecoder(encoding.WithFallback(e))
	r, err := d.Reader(bytes.NewReader([]byte{0xA4}))
	require.NoError(t, err)

	_, err = io.ReadAll(r)
	require.NoError(t, err)
}
