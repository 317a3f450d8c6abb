package overlap

// EvaluatePixels compares a test foreground mask with the ground truth. The
// confusion ratios are computed pixel by pixel; the Rand indices treat each
// 8-connected foreground region (within the valid area) as one object and the
// remaining pixels as background.
func EvaluatePixels(req PixelRequest) (Result, error) {
	var out Result

	if req.WantDisplay {
		display, counts, err := ConfusionPixels(req.Test, req.GroundTruth, req.Valid)
		if err != nil {
			return out, err
		}
		out.Display = &display
		out.Counts = counts
	} else {
		counts, err := CountConfusion(req.Test, req.GroundTruth, req.Valid)
		if err != nil {
			return out, err
		}
		out.Counts = counts
	}

	gtLabels, gtObjects := LabelComponents(And(req.GroundTruth, req.Valid))
	testLabels, testObjects := LabelComponents(And(req.Test, req.Valid))
	out.GroundTruthObjects = gtObjects
	out.TestObjects = testObjects

	rand, err := ContingencyRandIndex(gtLabels, testLabels, req.Valid)
	if err != nil {
		return out, err
	}

	out.Metrics = out.Counts.Metrics()
	out.Metrics.RandIndex = rand.RandIndex
	out.Metrics.AdjustedRandIndex = rand.AdjustedRandIndex

	return out, nil
}
