package synth

import(
  "math"
)

const HighPassCutoff = 25.0

// FilterState is what a one pole filter needs to pick up where the previous
// chunk left off.
type FilterState struct {
  PrevInput float64
  PrevOutput float64
}

// HighPass is a one pole high pass filter:
//   y[k] = alpha * (y[k-1] + x[k] - x[k-1])
type HighPass struct {
  Alpha float64
  State FilterState
}

func HighPassAlpha(cutoff float64, sampleRate int) float64 {
  return math.Exp(-twoPi * cutoff / float64(sampleRate))
}

func NewHighPass(cutoff float64, sampleRate int) *HighPass {
  return &HighPass{
    Alpha: HighPassAlpha(cutoff, sampleRate),
  }
}

// Process filters x in place and carries the state to the next call, so
// filtering a signal in pieces gives the same samples as filtering it whole.
func (hp *HighPass) Process(x []float64) {
  prevX := hp.State.PrevInput
  prevY := hp.State.PrevOutput

  for k := 0; k < len(x); k++ {
    in := x[k]
    prevY = hp.Alpha * (prevY + in - prevX)
    prevX = in
    x[k] = prevY
  }

  hp.State.PrevInput = prevX
  hp.State.PrevOutput = prevY
}
