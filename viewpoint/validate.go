package viewpoint

import "image"

// ValidateConfig holds the perceptual-quality thresholds. All values are in
// 8-bit channel scale.
type ValidateConfig struct {
	MinBrightness  float64 // Min luma-weighted mean brightness
	MinVariance    float64 // Min luma variance; rejects uniform renders
	BlackThreshold uint8   // A pixel with all channels below this is "black"
	MaxBlackRatio  float64 // Max fraction of black pixels
	MinMeanColor   float64 // Min per-channel mean; rejects dark-with-outliers
}

// Luma weights for perceptual brightness (ITU-R BT.601).
const (
	lumaR = 0.2989
	lumaG = 0.5870
	lumaB = 0.1140
)

// Validate scores one rendered frame. It accepts iff the luma mean clears
// MinBrightness, the luma variance clears MinVariance, the black-pixel
// fraction stays under MaxBlackRatio, and every channel mean clears
// MinMeanColor. The last check guards against mostly-black frames whose few
// bright outliers drag the mean over the brightness floor.
//
// Pure function: no side effects, and the verdict carries the raw statistics
// on rejection too, so thresholds can be tuned without re-rendering.
func Validate(img image.Image, cfg ValidateConfig) Verdict {
	if img == nil {
		return Verdict{}
	}
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return Verdict{}
	}

	var lumaSum, lumaSqSum float64
	var sumR, sumG, sumB float64
	blackPixels := 0
	blackMax := uint32(cfg.BlackThreshold)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := r16 >> 8
			g := g16 >> 8
			b := b16 >> 8

			luma := lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b)
			lumaSum += luma
			lumaSqSum += luma * luma
			sumR += float64(r)
			sumG += float64(g)
			sumB += float64(b)

			if r < blackMax && g < blackMax && b < blackMax {
				blackPixels++
			}
		}
	}

	n := float64(total)
	mean := lumaSum / n
	v := Verdict{
		Brightness: mean,
		Variance:   lumaSqSum/n - mean*mean,
		BlackRatio: float64(blackPixels) / n,
		MeanColor:  [3]float64{sumR / n, sumG / n, sumB / n},
	}

	// Near-black means every channel mean is under the floor; a single dim
	// channel (say a red-lit room) is fine.
	nearBlack := v.MeanColor[0] < cfg.MinMeanColor &&
		v.MeanColor[1] < cfg.MinMeanColor &&
		v.MeanColor[2] < cfg.MinMeanColor

	v.Accepted = v.Brightness >= cfg.MinBrightness &&
		v.Variance >= cfg.MinVariance &&
		v.BlackRatio <= cfg.MaxBlackRatio &&
		!nearBlack

	return v
}
