package resources

import (
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textimg/core/font"
)

// Registry holds fonts which have been loaded from the file system, keyed by
// normalized font name. Typecases are not held, as they carry mutable state
// and may not be shared between goroutines.
type Registry struct {
	sync.Mutex
	fonts map[string]*font.ScalableFont
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold loaded fonts.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty font registry.
func NewRegistry() *Registry {
	return &Registry{
		fonts: make(map[string]*font.ScalableFont),
	}
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the normalized font name as a key. If this
// key is already associated with a font, that font will not be overridden.
func (fr *Registry) StoreFont(name string, f *font.ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	key := font.NormalizeFontname(name)
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[key]; !ok {
		tracer().Debugf("registry stores font %s as %s", f.Fontname, key)
		fr.fonts[key] = f
	}
}

// Font returns the font stored for a name, if any.
func (fr *Registry) Font(name string) (*font.ScalableFont, bool) {
	fr.Lock()
	defer fr.Unlock()
	f, ok := fr.fonts[font.NormalizeFontname(name)]
	return f, ok
}

// LogFontList is a helper function to dump the list of known fonts
// to the trace (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	defer tracer().SetTraceLevel(level)
	fr.Lock()
	defer fr.Unlock()
	tracer().Infof("--- registered fonts ---")
	for k, v := range fr.fonts {
		tracer().Infof("font [%s] = %v (%s)", k, v.Fontname, v.Filepath)
	}
	tracer().Infof("------------------------")
}
