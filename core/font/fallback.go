package font

import (
	"sync"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// --- Fallback fonts --------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadPackagedFont("Go Regular", goregular.TTF)
	})
	return fallbackFont
}

// FallbackMonoFont returns a monospaced font which is always present.
// Currently we use Go Mono.
func FallbackMonoFont() *ScalableFont {
	fallbackMonoLoading.Do(func() {
		fallbackMono = loadPackagedFont("Go Mono", gomono.TTF)
	})
	return fallbackMono
}

var fallbackFontLoading, fallbackMonoLoading sync.Once

// fallback fonts are used if everything else failes.
var fallbackFont, fallbackMono *ScalableFont

func loadPackagedFont(name string, binary []byte) *ScalableFont {
	f, err := ParseOpenTypeFont(binary)
	if err != nil {
		panic("cannot load packaged font " + name) // this cannot happen
	}
	f.Fontname = name
	f.Filepath = "internal"
	return f
}
