package synth

import(
  "errors"
  "fmt"
  "math"
)

// ErrInvalidConfig is wrapped by every RenderConfig validation failure.
var ErrInvalidConfig = errors.New("invalid render config")

const DefaultSampleRate = 44100
const DefaultChunkSeconds = 5.0
const DefaultCrossfadeMs = 50.0

var allowedBitDepths = map[int]bool {
  16: true,
  24: true,
}

// RenderConfig holds the parameters of one render. NewRenderer takes a copy,
// so changing a RenderConfig after that has no effect on the render.
type RenderConfig struct {
  Frequency float64
  Seconds float64
  SampleRate int
  Channels int
  BitDepth int
  Seed *int64

  // zero means use the default
  ChunkSeconds float64
  CrossfadeMs float64

  // Overlap renders CrossfadeFrames of lookahead past every chunk and blends
  // the next chunk with that instead of replaying the chunk's own last frames.
  Overlap bool
}

// Seed returns a pointer to seed, for filling RenderConfig.Seed inline.
func Seed(seed int64) *int64 {
  return &seed
}

func (c RenderConfig) withDefaults() RenderConfig {
  if c.ChunkSeconds == 0 {
    c.ChunkSeconds = DefaultChunkSeconds
  }

  if c.CrossfadeMs == 0 {
    c.CrossfadeMs = DefaultCrossfadeMs
  }

  return c
}

func (c RenderConfig) Validate() error {
  c = c.withDefaults()

  if !(c.Frequency > 0) || math.IsInf(c.Frequency, 0) {
    return fmt.Errorf("%w: frequency must be > 0 Hz, got %f", ErrInvalidConfig, c.Frequency)
  }

  if !(c.Seconds > 0) || math.IsInf(c.Seconds, 0) {
    return fmt.Errorf("%w: duration must be > 0 seconds, got %f", ErrInvalidConfig, c.Seconds)
  }

  if c.SampleRate <= 0 {
    return fmt.Errorf("%w: sample rate must be > 0, got %d", ErrInvalidConfig, c.SampleRate)
  }

  if c.Channels != 1 && c.Channels != 2 {
    return fmt.Errorf("%w: channels must be 1 or 2, got %d", ErrInvalidConfig, c.Channels)
  }

  if !allowedBitDepths[c.BitDepth] {
    return fmt.Errorf("%w: bit depth must be 16 or 24, got %d", ErrInvalidConfig, c.BitDepth)
  }

  if !(c.ChunkSeconds > 0) || !(c.CrossfadeMs > 0) {
    return fmt.Errorf("%w: chunk length and crossfade length must be > 0", ErrInvalidConfig)
  }

  if c.ChunkFrames() < c.CrossfadeFrames() {
    return fmt.Errorf(
      "%w: chunk of %d frames is shorter than the %d frame crossfade",
      ErrInvalidConfig,
      c.ChunkFrames(),
      c.CrossfadeFrames(),
    )
  }

  return nil
}

// TotalFrames is the exact number of frames the render emits.
func (c RenderConfig) TotalFrames() int {
  return int(math.Round(c.Seconds * float64(c.SampleRate)))
}

func (c RenderConfig) ChunkFrames() int {
  c = c.withDefaults()
  return int(float64(c.SampleRate) * c.ChunkSeconds)
}

// CrossfadeFrames is n_xf, never less than one frame.
func (c RenderConfig) CrossfadeFrames() int {
  c = c.withDefaults()
  n := int(float64(c.SampleRate) * c.CrossfadeMs / 1000.0)

  if n < 1 {
    return 1
  }

  return n
}
