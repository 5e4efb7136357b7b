package object

import "github.com/tomz197/snake/internal/draw"

// Drawable is anything that paints itself on a surface.
type Drawable interface {
	Draw(s draw.Surface)
}

// DrawAll draws each object in order, skipping nil entries.
func DrawAll(s draw.Surface, objects ...Drawable) {
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		obj.Draw(s)
	}
}

var (
	_ Drawable = (*Cell)(nil)
	_ Drawable = (*Food)(nil)
	_ Drawable = (*Snake)(nil)
)
