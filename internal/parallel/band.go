package parallel

// Band is a half-open row range [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Height returns the number of rows in the band.
func (b Band) Height() int { return b.Y1 - b.Y0 }

// Bands splits height rows into at most n contiguous bands whose heights
// differ by at most one. It returns nil for a non-positive height.
func Bands(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	n = min(max(n, 1), height)

	bands := make([]Band, n)
	base, extra := height/n, height%n
	y := 0
	for i := range bands {
		h := base
		if i < extra {
			h++
		}
		bands[i] = Band{Y0: y, Y1: y + h}
		y += h
	}
	return bands
}

// ForEachBand splits height rows into n bands and runs fn for each of them
// on pool, returning after all bands are done. Bands are disjoint, so fn may
// write its rows without synchronisation.
func ForEachBand(pool *WorkerPool, height, n int, fn func(Band)) {
	pool.Run(Bands(height, n), fn)
}
