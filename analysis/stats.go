package analysis

import(
  "math"
)

// Stats accumulates level and seam measurements over a file read chunk by
// chunk, keeping only a few values per channel.
type Stats struct {
  ChunkFrames int
  Frames int

  peak float64
  sumSquares float64
  numSamples int
  prev []float64
  boundaryStep float64
  interiorStep float64
  chunkPeaks []float64
  chunkPeak float64
}

// chunkFrames is the render chunk length used to find chunk boundaries.
func NewStats(chunkFrames int) *Stats {
  return &Stats{
    ChunkFrames: chunkFrames,
  }
}

// Add takes the next channel major block of the file.
func (s *Stats) Add(block [][]float64) {
  if len(block) == 0 {
    return
  }

  if s.prev == nil {
    s.prev = make([]float64, len(block), len(block))
  }

  numFrames := len(block[0])

  for k := 0; k < numFrames; k++ {
    frame := s.Frames + k
    boundary := s.ChunkFrames > 0 && frame > 0 && frame % s.ChunkFrames == 0

    if boundary {
      s.closeChunk()
    }

    for c, data := range block {
      sample := data[k]
      magnitude := math.Abs(sample)

      s.peak = math.Max(s.peak, magnitude)
      s.chunkPeak = math.Max(s.chunkPeak, magnitude)
      s.sumSquares += sample * sample
      s.numSamples++

      if frame > 0 {
        step := math.Abs(sample - s.prev[c])

        if boundary {
          s.boundaryStep = math.Max(s.boundaryStep, step)
        } else {
          s.interiorStep = math.Max(s.interiorStep, step)
        }
      }

      s.prev[c] = sample
    }
  }

  s.Frames += numFrames
}

func (s *Stats) closeChunk() {
  s.chunkPeaks = append(s.chunkPeaks, s.chunkPeak)
  s.chunkPeak = 0
}

func (s *Stats) Peak() float64 {
  return s.peak
}

func (s *Stats) RMS() float64 {
  if s.numSamples == 0 {
    return 0
  }

  return math.Sqrt(s.sumSquares / float64(s.numSamples))
}

// Decibels converts an amplitude relative to full scale, silence is -Inf.
func Decibels(amplitude float64) float64 {
  return 20 * math.Log10(amplitude)
}

// SeamRatio compares the largest jump between neighbouring frames across a
// chunk boundary with the largest jump anywhere else. Values well above 1
// point at audible seams.
func (s *Stats) SeamRatio() float64 {
  if s.interiorStep == 0 {
    return 0
  }

  return s.boundaryStep / s.interiorStep
}

// ChunkPeaks returns the peak of every chunk seen so far, including the
// current partial one.
func (s *Stats) ChunkPeaks() []float64 {
  peaks := append([]float64{}, s.chunkPeaks...)

  if s.Frames > 0 {
    peaks = append(peaks, s.chunkPeak)
  }

  return peaks
}
