package analysis

import(
  "math"
  "math/cmplx"
)

const twoPi = 2 * math.Pi

// FFT is an in-place radix-2 transform. len(x) must be a power of two. The
// inverse transform is scaled by 1/len(x) so FFT(x, true) undoes FFT(x, false).
func FFT(x []complex128, inverse bool) {
  n := len(x)

  for i, j := 1, 0; i < n; i++ {
    bit := n >> 1

    for ; j & bit != 0; bit >>= 1 {
      j ^= bit
    }
    j ^= bit

    if i < j {
      x[i], x[j] = x[j], x[i]
    }
  }

  sign := -1.0
  if inverse {
    sign = 1.0
  }

  for size := 2; size <= n; size <<= 1 {
    half := size / 2

    for k := 0; k < half; k++ {
      w := cmplx.Rect(1, sign * twoPi * float64(k) / float64(size))

      for start := k; start < n; start += size {
        a := x[start]
        b := w * x[start + half]
        x[start] = a + b
        x[start + half] = a - b
      }
    }
  }

  if inverse {
    scale := complex(1 / float64(n), 0)

    for i := range x {
      x[i] *= scale
    }
  }
}

// Spectrum transforms real samples and returns bins 0 (DC) through
// len(samples)/2 (Nyquist).
func Spectrum(samples []float64) []complex128 {
  x := make([]complex128, len(samples), len(samples))

  for i, s := range samples {
    x[i] = complex(s, 0)
  }

  FFT(x, false)

  return x[:len(x) / 2 + 1]
}
