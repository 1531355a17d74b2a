package analysis

import(
  "fmt"
  "math"
  "sort"
  "strings"
)

// cosine-sum coefficients: w[i] = a0 - a1·cos(2πi/(n-1)) + a2·cos(4πi/(n-1)) ...
var windowCoefficients = map[string][]float64 {
  "rectangle": {1},
  "hann": {0.5, 0.5},
  "hamming": {0.54, 0.46},
  "blackman": {0.42, 0.5, 0.08},
}

func WindowNames() []string {
  windowNames := make([]string, 0, len(windowCoefficients))

  for windowName := range windowCoefficients {
    windowNames = append(windowNames, windowName)
  }

  sort.Strings(windowNames)
  return windowNames
}

func WindowNamesString() string {
  return strings.Join(WindowNames(), ", ")
}

func IsWindow(name string) bool {
  _, ok := windowCoefficients[name]
  return ok
}

// Window returns a symmetric window of size points.
func Window(name string, size int) ([]float64, error) {
  coefficients, ok := windowCoefficients[name]

  if !ok {
    return nil, fmt.Errorf("unknown window %q, one of: %s", name, WindowNamesString())
  }

  window := make([]float64, size, size)

  if size == 1 {
    window[0] = 1
    return window, nil
  }

  for i := range window {
    phase := twoPi * float64(i) / float64(size - 1)
    sign := 1.0

    for k, a := range coefficients {
      window[i] += sign * a * math.Cos(float64(k) * phase)
      sign = -sign
    }
  }

  return window, nil
}
