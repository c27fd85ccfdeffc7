package painter

import (
	"github.com/golang/freetype/truetype"
	"github.com/llgcode/draw2d"
	"golang.org/x/image/font/gofont/goregular"
)

const defaultFont = "goregular"

// FontCache resolves every font name to a loaded font, falling back to the
// default one.
type FontCache map[string]*truetype.Font

func (f FontCache) Load(fd draw2d.FontData) (*truetype.Font, error) {
	font, ok := f[fd.Name]
	if !ok {
		return f[defaultFont], nil
	}
	return font, nil
}

func (f FontCache) Store(fd draw2d.FontData, tf *truetype.Font) {
	f[fd.Name] = tf
}

func loadDefaultFont() (*truetype.Font, draw2d.FontData, error) {
	fd := draw2d.FontData{
		Name:   defaultFont,
		Family: draw2d.FontFamilySans,
		Style:  draw2d.FontStyleNormal,
	}
	font, err := truetype.Parse(goregular.TTF)
	return font, fd, err
}
