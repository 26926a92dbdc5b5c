package ui

// Base colors of the debug overlays. The fill helpers write premultiplied alpha.
var (
	countTint  = [3]uint8{255, 140, 40}
	changeTint = [3]uint8{220, 40, 60}
)

// fillCountRGBA shades each cell by its wall-neighbor count (0..8): more
// walls nearby gives a stronger tint.
func fillCountRGBA(buf []byte, counts []uint8) {
	for i, n := range counts {
		if n > 8 {
			n = 8
		}
		alpha := uint16(n) * 24
		base := i * 4
		buf[base+0] = uint8(uint16(countTint[0]) * alpha / 255)
		buf[base+1] = uint8(uint16(countTint[1]) * alpha / 255)
		buf[base+2] = uint8(uint16(countTint[2]) * alpha / 255)
		buf[base+3] = uint8(alpha)
	}
}

// fillChangeRGBA highlights cells that flipped during the last step.
func fillChangeRGBA(buf []byte, changed []bool) {
	const alpha = 160
	for i, c := range changed {
		base := i * 4
		if !c {
			buf[base+0], buf[base+1], buf[base+2], buf[base+3] = 0, 0, 0, 0
			continue
		}
		buf[base+0] = uint8(uint16(changeTint[0]) * alpha / 255)
		buf[base+1] = uint8(uint16(changeTint[1]) * alpha / 255)
		buf[base+2] = uint8(uint16(changeTint[2]) * alpha / 255)
		buf[base+3] = alpha
	}
}
