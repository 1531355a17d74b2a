package synth

// Crossfader hides chunk boundaries by blending the head of every new chunk
// with the tail of the previous one (overlap-replace).
type Crossfader struct {
  Length int
  tails []*TailBuffer
  fadeIn []float64
  fadeOut []float64
}

func NewCrossfader(length, channels int) *Crossfader {
  xf := &Crossfader{
    Length: length,
    tails: make([]*TailBuffer, channels, channels),
    fadeIn: FadeInWindow(length),
    fadeOut: FadeOutWindow(length),
  }

  for c := 0; c < channels; c++ {
    xf.tails[c] = NewTailBuffer(length)
  }

  return xf
}

// Apply blends the first Length frames of block with the previous tail. It
// returns false when nothing was blended: on the first chunk, or when the
// chunk is shorter than the crossfade.
func (xf *Crossfader) Apply(block [][]float64) bool {
  if len(block) == 0 || len(block[0]) < xf.Length {
    return false
  }

  blended := false

  for c, data := range block {
    tail := xf.tails[c]

    if !tail.Full() {
      continue
    }

    for j := 0; j < xf.Length; j++ {
      data[j] = data[j] * xf.fadeIn[j] + tail.Data[j] * xf.fadeOut[j]
    }

    blended = true
  }

  return blended
}

// Stage remembers the tail of block for the next chunk. It is not used until
// Commit.
func (xf *Crossfader) Stage(block [][]float64) {
  for c, data := range block {
    xf.tails[c].Stage(data)
  }
}

func (xf *Crossfader) Commit() error {
  for _, tail := range xf.tails {
    if err := tail.Commit(); err != nil {
      return err
    }
  }

  return nil
}

// Tail returns the committed tail of a channel.
func (xf *Crossfader) Tail(channel int) []float64 {
  return xf.tails[channel].Data
}
