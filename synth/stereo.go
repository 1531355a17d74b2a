package synth

import(
  "math"
)

const panCenter = 0.5
const panWidth = 0.15
const panRate = 0.002
const panPhase = 1.3

// Pan returns the drifting pan position at absolute time t, roughly 0.35..0.65.
func Pan(t float64) float64 {
  return panCenter + panWidth * math.Sin(twoPi * panRate * t + panPhase)
}

// Image spreads the mono mix over the requested number of channels. One
// channel is passed through untouched.
func Image(mix, t []float64, channels int) [][]float64 {
  if channels == 1 {
    return [][]float64{mix}
  }

  left := make([]float64, len(mix), len(mix))
  right := make([]float64, len(mix), len(mix))

  for i := 0; i < len(mix); i++ {
    theta := Pan(t[i]) * math.Pi / 2.0
    left[i] = mix[i] * math.Cos(theta)
    right[i] = mix[i] * math.Sin(theta)
  }

  return [][]float64{left, right}
}
