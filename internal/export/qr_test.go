package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuURL(t *testing.T) {
	testCases := []struct {
		name     string
		origin   string
		userID   string
		expected string
		wantErr  bool
	}{
		{name: "plain origin", origin: "https://menus.example.com", userID: "42", expected: "https://menus.example.com/menu/42"},
		{name: "trailing slash", origin: "http://localhost:5173/", userID: "7", expected: "http://localhost:5173/menu/7"},
		{name: "escapes user id", origin: "https://example.com", userID: "a b", expected: "https://example.com/menu/a%20b"},
		{name: "missing scheme", origin: "localhost:5173", userID: "1", wantErr: true},
		{name: "unsupported scheme", origin: "ftp://example.com", userID: "1", wantErr: true},
		{name: "no host", origin: "https://", userID: "1", wantErr: true},
		{name: "query not allowed", origin: "https://example.com?x=1", userID: "1", wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewQRGenerator(tt.origin).MenuURL(tt.userID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGenerateWithoutUser(t *testing.T) {
	img, err := NewQRGenerator("https://example.com").Generate("")

	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Nil(t, img)
}

func TestGenerateProducesTwoTonePNG(t *testing.T) {
	data, err := NewQRGenerator("https://menus.example.com").Generate("42")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, QRSize, bounds.Dx())
	assert.Equal(t, QRSize, bounds.Dy())

	// the corner sits in the quiet zone
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xFE, 0xFC, 0xF8}, []uint32{r >> 8, g >> 8, b >> 8})

	var sawDark bool
	for y := bounds.Min.Y; y < bounds.Max.Y && !sawDark; y += 4 {
		for x := bounds.Min.X; x < bounds.Max.X; x += 4 {
			r, g, b, _ := img.At(x, y).RGBA()
			if r>>8 == 0x1F && g>>8 == 0x29 && b>>8 == 0x37 {
				sawDark = true
				break
			}
		}
	}
	assert.True(t, sawDark, "expected charcoal modules in the image")
}

func TestGenerateMalformedOrigin(t *testing.T) {
	img, err := NewQRGenerator("not a url").Generate("42")

	var encErr *QREncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Nil(t, img)
}

func TestGenerateContentTooLong(t *testing.T) {
	origin := "https://example.com/" + strings.Repeat("x", 3000)

	img, err := NewQRGenerator(origin).Generate("42")

	var encErr *QREncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Nil(t, img)
}
