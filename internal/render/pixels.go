package render

import "image/color"

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// scaleRGBA blows up an n*n RGBA buffer by an integer factor.
func scaleRGBA(src []byte, n, scale int) []byte {
	if scale <= 1 {
		return src
	}
	side := n * scale
	dst := make([]byte, 4*side*side)
	for y := 0; y < side; y++ {
		sy := y / scale
		for x := 0; x < side; x++ {
			s := 4 * (sy*n + x/scale)
			d := 4 * (y*side + x)
			copy(dst[d:d+4], src[s:s+4])
		}
	}
	return dst
}
