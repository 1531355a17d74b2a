package synth

import(
  "math"
  "math/rand"
)

const noiseStreams = 8
const noiseEpsilon = 1e-9

// PinkNoise returns n samples of 1/f-ish noise peaking at about 1.0. Stream i
// of the white noise is smoothed by a box filter 2^i samples wide, then all
// streams are summed. Every call is independent of the last.
func PinkNoise(rng *rand.Rand, n int) []float64 {
  out := make([]float64, n, n)

  if n == 0 {
    return out
  }

  white := make([]float64, n, n)

  for i := 0; i < noiseStreams; i++ {
    for k := 0; k < n; k++ {
      white[k] = rng.NormFloat64()
    }

    boxFilterAdd(white, 1 << uint(i), out)
  }

  peak := 0.0
  for k := 0; k < n; k++ {
    peak = math.Max(peak, math.Abs(out[k]))
  }

  scale := 1.0 / (peak + noiseEpsilon)
  for k := 0; k < n; k++ {
    out[k] *= scale
  }

  return out
}

// boxFilterAdd convolves x with a width-sample moving average, keeps the
// centred len(x) samples of the full convolution and adds them into out.
// Samples outside x count as zero.
func boxFilterAdd(x []float64, width int, out []float64) {
  n := len(x)
  offset := (width - 1) / 2

  // prefix[k] = x[0] + ... + x[k-1]
  prefix := make([]float64, n + 1, n + 1)
  for k := 0; k < n; k++ {
    prefix[k + 1] = prefix[k] + x[k]
  }

  scale := 1.0 / float64(width)

  for i := 0; i < n; i++ {
    hi := i + offset
    lo := hi - width + 1

    if hi > n - 1 {
      hi = n - 1
    }

    if lo < 0 {
      lo = 0
    }

    if hi < lo {
      continue
    }

    out[i] += (prefix[hi + 1] - prefix[lo]) * scale
  }
}
