package qr_test

import (
	"bytes"
	"strings"
	"testing"

	"storefront/internal/qr"

	"github.com/stretchr/testify/assert"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestPNG(t *testing.T) {
	g := qr.NewGenerator()

	png, err := g.PNG("1Fy8wJqnmi4kRosSrhTJEM3sAYsFWpFnVr")
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestDataURI(t *testing.T) {
	g := qr.NewGenerator()

	uri, err := g.DataURI("0x50m3crazy1d")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestEmptyPayloadFails(t *testing.T) {
	g := qr.NewGenerator()

	_, err := g.PNG("")
	assert.Error(t, err)
}
