package font

import (
	"bytes"
	"sync"

	"github.com/benoitkugler/textlayout/fonts/truetype"
	"github.com/npillmayer/textimg/core"
)

// Table-level access to a font is needed for shaping and for diagnostics.
// Parsed tables are read-only, therefore one parse per scalable font is
// shared by all its clients.
var tableCache = struct {
	sync.Mutex
	faces map[*ScalableFont]*truetype.Font
}{faces: make(map[*ScalableFont]*truetype.Font)}

// Tables returns the font's OpenType tables, including the advanced layout
// tables GSUB and GPOS. The result is cached and must not be modified.
func (sf *ScalableFont) Tables() (*truetype.Font, error) {
	if sf == nil {
		return nil, core.Error(core.EMISSING, "no font to read tables from")
	}
	tableCache.Lock()
	defer tableCache.Unlock()
	if face, ok := tableCache.faces[sf]; ok {
		return face, nil
	}
	face, err := truetype.Parse(bytes.NewReader(sf.Binary), true)
	if err != nil {
		return nil, core.WrapError(err, core.EFONTLOAD, "cannot read tables of font %s", sf.Fontname)
	}
	tracer().Debugf("parsed tables of font %s", sf.Fontname)
	tableCache.faces[sf] = face
	return face, nil
}
