package synth

import(
  "math"
)

const LimiterCeiling = 0.995

// Peak is the largest absolute sample across all channels of block.
func Peak(block [][]float64) float64 {
  peak := 0.0

  for _, data := range block {
    for _, s := range data {
      peak = math.Max(peak, math.Abs(s))
    }
  }

  return peak
}

// Limit scales block down so no sample exceeds ceiling. It returns the gain
// that was applied, 1.0 when the chunk was already in range.
func Limit(block [][]float64, ceiling float64) float64 {
  peak := Peak(block)

  if peak <= ceiling {
    return 1.0
  }

  gain := ceiling / peak

  for _, data := range block {
    for i := range data {
      data[i] *= gain
    }
  }

  return gain
}
