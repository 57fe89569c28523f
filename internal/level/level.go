// Package level maps a star total to a level.
package level

// thresholds[i] is the minimum star total for level i+1.
var thresholds = []int{0, 20, 50, 100, 180, 300, 450, 650, 900, 1200, 1500}

// BlockSize is the number of stars per level past the last threshold.
const BlockSize = 500

// Level is a level and the stars still needed to reach the next one.
type Level struct {
	Level       int `json:"level"`
	StarsToNext int `json:"stars_to_next"`
}

// For returns the level for totalStars. Negative totals count as zero.
func For(totalStars int) Level {
	if totalStars < 0 {
		totalStars = 0
	}

	top := thresholds[len(thresholds)-1]
	if totalStars > top {
		over := totalStars - top
		blocks := over/BlockSize + 1
		return Level{
			Level:       len(thresholds) + blocks,
			StarsToNext: top + blocks*BlockSize - totalStars,
		}
	}

	for i := len(thresholds) - 1; i >= 0; i-- {
		if totalStars < thresholds[i] {
			continue
		}
		next := top + BlockSize
		if i+1 < len(thresholds) {
			next = thresholds[i+1]
		}
		return Level{Level: i + 1, StarsToNext: next - totalStars}
	}
	return Level{Level: 1, StarsToNext: thresholds[1]}
}

// Progress returns how far totalStars is through its current level, in [0, 1].
func Progress(totalStars int) float64 {
	l := For(totalStars)
	var start int
	if l.Level <= len(thresholds) {
		start = thresholds[l.Level-1]
	} else {
		start = thresholds[len(thresholds)-1] + (l.Level-len(thresholds)-1)*BlockSize
	}
	span := totalStars + l.StarsToNext - start
	if span <= 0 {
		return 0
	}
	done := max(totalStars, 0) - start
	return float64(done) / float64(span)
}
