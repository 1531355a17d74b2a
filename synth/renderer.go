package synth

import(
  "fmt"
  "math/rand"
  "time"
)

// Sink receives rendered chunks, channel major, in the order they were
// produced.
type Sink interface {
  WriteFrames(block [][]float64) error
}

// ProgressFunc is called after every chunk the sink accepted.
type ProgressFunc func(framesWritten, totalFrames int)

type Renderer struct {
  Config RenderConfig
  Layers []LayerSpec
  Noise NoiseSpec
  MasterGainDb float64
  Seed int64

  rng *rand.Rand
  bank *OscillatorBank
  filters []*HighPass
  crossfader *Crossfader
  framesWritten int
}

// NewRenderer validates cfg and draws the oscillator phases. Nothing is
// written anywhere until Render is called.
func NewRenderer(cfg RenderConfig) (*Renderer, error) {
  if err := cfg.Validate(); err != nil {
    return nil, err
  }

  cfg = cfg.withDefaults()

  seed := time.Now().UnixNano()
  if cfg.Seed != nil {
    seed = *cfg.Seed
  }

  r := &Renderer{
    Config: cfg,
    Layers: append([]LayerSpec(nil), DefaultLayers...),
    Noise: DefaultNoise,
    MasterGainDb: DefaultMasterGainDb,
    Seed: seed,
    rng: rand.New(rand.NewSource(seed)),
  }

  phases := make([]float64, len(r.Layers), len(r.Layers))
  for i := range phases {
    phases[i] = r.rng.Float64() * twoPi
  }

  r.bank = NewOscillatorBank(cfg.Frequency, r.Layers, phases)
  r.filters = make([]*HighPass, cfg.Channels, cfg.Channels)

  for c := 0; c < cfg.Channels; c++ {
    r.filters[c] = NewHighPass(HighPassCutoff, cfg.SampleRate)
  }

  r.crossfader = NewCrossfader(cfg.CrossfadeFrames(), cfg.Channels)

  return r, nil
}

func (r *Renderer) String() (output string) {
  output += fmt.Sprintf("%24s   %.2f Hz\n", "Fundamental:", r.Config.Frequency)
  output += fmt.Sprintf("%24s   %.2f s\n", "Duration:", r.Config.Seconds)
  output += fmt.Sprintf("%24s   %d\n", "Sample Rate:", r.Config.SampleRate)
  output += fmt.Sprintf("%24s   %d\n", "Bit Depth:", r.Config.BitDepth)
  output += fmt.Sprintf("%24s   %d\n", "Number of Channels:", r.Config.Channels)
  output += fmt.Sprintf("%24s   %d\n", "Seed:", r.Seed)
  output += fmt.Sprintf("%24s   %d frames\n", "Chunk Length:", r.Config.ChunkFrames())
  output += fmt.Sprintf("%24s   %d frames\n", "Crossfade Length:", r.Config.CrossfadeFrames())
  output += fmt.Sprintf("%24s   %t\n", "Overlap Crossfade:", r.Config.Overlap)
  return
}

func (r *Renderer) TotalFrames() int {
  return r.Config.TotalFrames()
}

func (r *Renderer) FramesWritten() int {
  return r.framesWritten
}

// Phases returns the fixed oscillator phase of every layer.
func (r *Renderer) Phases() []float64 {
  return r.bank.Phases
}

// timeVector holds the absolute time of frames [offset, offset+frames). It is
// derived from the integer frame index so no rounding error builds up.
func timeVector(offset, frames, sampleRate int) []float64 {
  t := make([]float64, frames, frames)
  sr := float64(sampleRate)

  for k := 0; k < frames; k++ {
    t[k] = float64(offset + k) / sr
  }

  return t
}

// synthesize builds the stereo imaged mix of frames [offset, offset+frames).
func (r *Renderer) synthesize(offset, frames int) [][]float64 {
  t := timeVector(offset, frames, r.Config.SampleRate)
  waves := r.bank.Generate(t)
  noise := PinkNoise(r.rng, frames)
  mix := Mix(t, r.Layers, waves, r.Noise, noise)

  return Image(mix, t, r.Config.Channels)
}

// filter runs the first frames samples of every channel through its high
// pass, carrying state, then applies the master gain. Anything past frames is
// lookahead: it is filtered from a copy of the state so the next chunk still
// starts where frames ended.
func (r *Renderer) filter(block [][]float64, frames int) {
  gain := DbToLin(r.MasterGainDb)

  for c, data := range block {
    r.filters[c].Process(data[:frames])

    if len(data) > frames {
      lookahead := &HighPass{Alpha: r.filters[c].Alpha, State: r.filters[c].State}
      lookahead.Process(data[frames:])
    }

    for i := range data {
      data[i] *= gain
    }
  }
}

// Render runs the chunk loop until every frame has been handed to sink. Any
// sink error stops the render; the caller owns and closes the sink.
func (r *Renderer) Render(sink Sink, progress ProgressFunc) error {
  total := r.TotalFrames()
  chunk := r.Config.ChunkFrames()
  xfLength := r.Config.CrossfadeFrames()

  for r.framesWritten < total {
    frames := chunk
    if remaining := total - r.framesWritten; remaining < frames {
      frames = remaining
    }

    extra := 0
    if r.Config.Overlap && r.framesWritten + frames < total {
      extra = xfLength
    }

    block := r.synthesize(r.framesWritten, frames + extra)
    r.filter(block, frames)

    lookahead := make([][]float64, len(block), len(block))
    for c := range block {
      lookahead[c] = block[c][frames:]
      block[c] = block[c][:frames]
    }

    r.crossfader.Apply(block)

    // the next crossfade sees this chunk after blending but before limiting
    if extra > 0 {
      r.crossfader.Stage(lookahead)
    } else {
      r.crossfader.Stage(block)
    }

    Limit(block, LimiterCeiling)

    if err := sink.WriteFrames(block); err != nil {
      return fmt.Errorf("writing chunk at frame %d: %w", r.framesWritten, err)
    }

    if err := r.crossfader.Commit(); err != nil {
      return err
    }

    r.framesWritten += frames

    if progress != nil {
      progress(r.framesWritten, total)
    }
  }

  return nil
}
