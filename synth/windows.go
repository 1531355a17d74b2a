package synth

// FadeInWindow returns j/size for j in [0, size).
func FadeInWindow(size int) []float64 {
  window := make([]float64, size, size)

  for i := 0; i < size; i++ {
    window[i] = float64(i) / float64(size)
  }

  return window
}

// FadeOutWindow is the complement of FadeInWindow, 1 - j/size.
func FadeOutWindow(size int) []float64 {
  window := make([]float64, size, size)

  for i := 0; i < size; i++ {
    tmpFloat := float64(i) / float64(size)
    window[i] = 1.0 - tmpFloat
  }

  return window
}
