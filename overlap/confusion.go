package overlap

// ConfusionCounts tallies pixels by agreement class. Pixels outside of the
// validity mask are never counted.
type ConfusionCounts struct {
	TP int64
	FP int64
	FN int64
	TN int64
}

// Total is the number of scored pixels.
func (c ConfusionCounts) Total() int64 {
	return c.TP + c.FP + c.FN + c.TN
}

// Precision is TP over everything the test labeled as foreground. If the test
// labeled nothing, it made no mistakes, so this is 1.
func (c ConfusionCounts) Precision() float64 {
	labeled := c.TP + c.FP
	if labeled == 0 {
		return 1
	}

	return float64(c.TP) / float64(labeled)
}

// Recall is TP over the ground truth foreground, or 1 if there is none.
func (c ConfusionCounts) Recall() float64 {
	actual := c.TP + c.FN
	if actual == 0 {
		return 1
	}

	return float64(c.TP) / float64(actual)
}

func (c ConfusionCounts) FFactor() float64 {
	return fFactor(c.Precision(), c.Recall())
}

func (c ConfusionCounts) FalsePosRate() float64 {
	negative := c.FP + c.TN
	if negative == 0 {
		return 0
	}

	return float64(c.FP) / float64(negative)
}

func (c ConfusionCounts) FalseNegRate() float64 {
	actual := c.TP + c.FN
	if actual == 0 {
		return 0
	}

	return float64(c.FN) / float64(actual)
}

// Metrics fills in the ratio fields. The Rand indices are left at zero for
// the caller to set.
func (c ConfusionCounts) Metrics() Metrics {
	return Metrics{
		FFactor:      c.FFactor(),
		Precision:    c.Precision(),
		Recall:       c.Recall(),
		FalsePosRate: c.FalsePosRate(),
		FalseNegRate: c.FalseNegRate(),
	}
}

// From http://en.wikipedia.org/wiki/F1_score
func fFactor(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}

	return 2 * precision * recall / (precision + recall)
}

// ConfusionMasks marks, per pixel, which agreement class the pixel fell into.
// Pixels outside of the validity mask are false in all four.
type ConfusionMasks struct {
	TruePositives  Mask
	FalsePositives Mask
	FalseNegatives Mask
	TrueNegatives  Mask
}

// CountConfusion compares a test mask against the ground truth within the
// valid region.
func CountConfusion(test, groundTruth, valid Mask) (ConfusionCounts, error) {
	var out ConfusionCounts

	if err := checkMaskShapes(test, groundTruth, valid); err != nil {
		return out, err
	}

	for idx, t := range test.Pix {
		if !valid.validAt(idx) {
			continue
		}

		g := groundTruth.Pix[idx]
		switch {
		case t && g:
			out.TP++
		case t && !g:
			out.FP++
		case !t && g:
			out.FN++
		default:
			out.TN++
		}
	}

	return out, nil
}

// ConfusionPixels returns the four per-pixel agreement masks along with their
// counts.
func ConfusionPixels(test, groundTruth, valid Mask) (ConfusionMasks, ConfusionCounts, error) {
	var counts ConfusionCounts

	if err := checkMaskShapes(test, groundTruth, valid); err != nil {
		return ConfusionMasks{}, counts, err
	}

	w, h := test.Width, test.Height
	out := ConfusionMasks{
		TruePositives:  NewMask(w, h),
		FalsePositives: NewMask(w, h),
		FalseNegatives: NewMask(w, h),
		TrueNegatives:  NewMask(w, h),
	}

	for idx, t := range test.Pix {
		if !valid.validAt(idx) {
			continue
		}

		g := groundTruth.Pix[idx]
		switch {
		case t && g:
			out.TruePositives.Pix[idx] = true
			counts.TP++
		case t && !g:
			out.FalsePositives.Pix[idx] = true
			counts.FP++
		case !t && g:
			out.FalseNegatives.Pix[idx] = true
			counts.FN++
		default:
			out.TrueNegatives.Pix[idx] = true
			counts.TN++
		}
	}

	return out, counts, nil
}

func checkMaskShapes(test, groundTruth, valid Mask) error {
	if err := test.checkShape(test.Width, test.Height); err != nil {
		return err
	}
	if err := groundTruth.checkShape(test.Width, test.Height); err != nil {
		return err
	}

	return valid.checkValid(test.Width, test.Height)
}
