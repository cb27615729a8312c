package mempool

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
)

const (
	smallMaxVSize  = 250
	mediumMaxVSize = 1000

	youngMaxAge    = 5 * time.Minute
	moderateMaxAge = time.Hour
)

// feeRateBounds are the upper bounds (sat/vB, exclusive) of all but the last histogram bucket.
var feeRateBounds = [model.FeeRateBuckets - 1]float64{1, 2, 5, 10, 20, 50, 100}

// Lens selects entries by virtual size class.
type Lens int

const (
	LensAll Lens = iota
	LensSmall
	LensMedium
	LensLarge
)

func (l Lens) String() string {
	switch l {
	case LensSmall:
		return "small"
	case LensMedium:
		return "medium"
	case LensLarge:
		return "large"
	default:
		return "all"
	}
}

// ParseLens accepts the names returned by Lens.String; empty means LensAll.
func ParseLens(s string) (Lens, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return LensAll, nil
	case "small":
		return LensSmall, nil
	case "medium":
		return LensMedium, nil
	case "large":
		return LensLarge, nil
	default:
		return LensAll, fmt.Errorf("unknown lens %q", s)
	}
}

// Match reports whether e falls in the lens.
func (l Lens) Match(e model.MempoolEntry) bool {
	switch l {
	case LensSmall:
		return e.VSize < smallMaxVSize
	case LensMedium:
		return e.VSize >= smallMaxVSize && e.VSize <= mediumMaxVSize
	case LensLarge:
		return e.VSize > mediumMaxVSize
	default:
		return true
	}
}

// Filter returns the entries matching lens, dropping dust unless includeDust is set.
// The input is not modified.
func Filter(entries []model.MempoolEntry, lens Lens, includeDust bool) []model.MempoolEntry {
	out := make([]model.MempoolEntry, 0, len(entries))
	for _, e := range entries {
		if !includeDust && e.Dust {
			continue
		}
		if lens.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Compute aggregates entries as of now. Dust entries count towards Count and
// DustCount only.
func Compute(entries []model.MempoolEntry, now time.Time) model.MempoolDistribution {
	var d model.MempoolDistribution
	fees := make([]btcutil.Amount, 0, len(entries))

	for _, e := range entries {
		d.Count++
		if e.Dust {
			d.DustCount++
			continue
		}

		switch {
		case e.VSize < smallMaxVSize:
			d.Small++
		case e.VSize <= mediumMaxVSize:
			d.Medium++
		default:
			d.Large++
		}

		switch age := now.Sub(e.Time); {
		case age <= youngMaxAge:
			d.Young++
		case age <= moderateMaxAge:
			d.Moderate++
		default:
			d.Old++
		}

		if e.RBF {
			d.RBF++
		} else {
			d.NonRBF++
		}

		d.TotalFee += e.BaseFee
		d.TotalVSize += uint64(e.VSize)
		fees = append(fees, e.BaseFee)
		var rate float64
		if e.VSize > 0 {
			rate = float64(e.BaseFee) / float64(e.VSize)
		}
		d.FeeRateHistogram[feeRateBucket(rate)]++
	}

	if n := len(fees); n > 0 {
		d.AverageFee = float64(d.TotalFee) / float64(n)
		slices.Sort(fees)
		if n%2 == 1 {
			d.MedianFee = float64(fees[n/2])
		} else {
			d.MedianFee = float64(fees[n/2-1]+fees[n/2]) / 2
		}
	}
	if d.TotalVSize > 0 {
		d.AverageFeeRate = float64(d.TotalFee) / float64(d.TotalVSize)
	}
	return d
}

func feeRateBucket(rate float64) int {
	for i, bound := range feeRateBounds {
		if rate < bound {
			return i
		}
	}
	return len(feeRateBounds)
}
