package step

// Band is a half-open row range [Y0, Y1) owned by one worker for one tick.
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int { return b.Y1 - b.Y0 }

// Partition splits rows [0, size) into at most workers contiguous bands. Rows
// are dealt out as evenly as possible, earlier bands taking the remainder, and
// no band is empty.
func Partition(size, workers int) []Band {
	if size <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > size {
		workers = size
	}
	base := size / workers
	extra := size % workers
	bands := make([]Band, 0, workers)
	y := 0
	for i := 0; i < workers; i++ {
		rows := base
		if i < extra {
			rows++
		}
		bands = append(bands, Band{Y0: y, Y1: y + rows})
		y += rows
	}
	return bands
}
