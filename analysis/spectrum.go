package analysis

import(
  "fmt"
  "math/cmplx"
)

const MinSpectrumPoints = 16
const MaxSpectrumPoints = 65536

func Magnitudes(bins []complex128) []float64 {
  amplitudes := make([]float64, len(bins), len(bins))

  for i, bin := range bins {
    amplitudes[i] = cmplx.Abs(bin)
  }

  return amplitudes
}

// SpectrumPoints is the largest power of two FFT that fits in numSamples,
// capped at MaxSpectrumPoints.
func SpectrumPoints(numSamples int) int {
  points := MinSpectrumPoints

  for points * 2 <= numSamples && points * 2 <= MaxSpectrumPoints {
    points *= 2
  }

  return points
}

// DominantFrequency estimates the strongest frequency in samples, skipping the
// DC band. The peak band is refined by fitting a parabola through its
// neighbours.
func DominantFrequency(samples []float64, sampleRate int, windowName string) (float64, error) {
  if len(samples) < MinSpectrumPoints {
    return 0, fmt.Errorf("need at least %d samples for a spectrum, got %d", MinSpectrumPoints, len(samples))
  }

  points := SpectrumPoints(len(samples))
  window, err := Window(windowName, points)

  if err != nil {
    return 0, err
  }

  windowed := make([]float64, points, points)

  for i := range windowed {
    windowed[i] = samples[i] * window[i]
  }

  amplitudes := Magnitudes(Spectrum(windowed))

  peakBand := 1
  for band := 2; band < len(amplitudes); band++ {
    if amplitudes[band] > amplitudes[peakBand] {
      peakBand = band
    }
  }

  offset := 0.0
  if peakBand > 1 && peakBand < len(amplitudes) - 1 {
    a := amplitudes[peakBand - 1]
    b := amplitudes[peakBand]
    c := amplitudes[peakBand + 1]

    if denominator := a - 2 * b + c; denominator != 0 {
      offset = 0.5 * (a - c) / denominator
    }
  }

  return (float64(peakBand) + offset) * float64(sampleRate) / float64(points), nil
}
