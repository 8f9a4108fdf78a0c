package texture

import "fmt"

// Blit copies a source rectangle into the destination texture with its
// top-left corner at (destX, destY). Rows are copied top-to-bottom and
// bytes are copied verbatim: there is no blending, a later write fully
// overwrites earlier pixels. The function holds no state and is safe to
// call any number of times across different textures.
func Blit(dst, src *Texture, srcRect Rect, destX, destY int) error {
	if dst.PixelSize != src.PixelSize {
		return fmt.Errorf("blit: pixel size mismatch: dst %d, src %d", dst.PixelSize, src.PixelSize)
	}
	width := srcRect.Width()
	height := srcRect.Height()
	if width <= 0 || height <= 0 {
		return nil
	}
	if srcRect.Min.X < 0 || srcRect.Min.Y < 0 || srcRect.Max.X > src.Width || srcRect.Max.Y > src.Height {
		return fmt.Errorf("blit: source rect %v outside %dx%d sheet", srcRect, src.Width, src.Height)
	}
	if destX < 0 || destY < 0 || destX+width > dst.Width || destY+height > dst.Height {
		return fmt.Errorf("blit: dest rect %dx%d at (%d,%d) outside %dx%d texture",
			width, height, destX, destY, dst.Width, dst.Height)
	}

	size := dst.PixelSize
	rowBytes := width * size
	for r := 0; r < height; r++ {
		begin := ((destY+r)*dst.Width + destX) * size
		srcBegin := ((srcRect.Min.Y+r)*src.Width + srcRect.Min.X) * size
		copy(dst.Data[begin:begin+rowBytes], src.Data[srcBegin:srcBegin+rowBytes])
	}
	return nil
}
