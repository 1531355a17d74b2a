package synth

import(
  "errors"
  "math"
  "math/rand"
  "testing"
  . "sfe/testing_utilities"
)

// memorySink collects every chunk it is given, channel by channel.
type memorySink struct {
  channels [][]float64
  chunks []int
  failAt int
}

func (ms *memorySink) WriteFrames(block [][]float64) error {
  if ms.failAt > 0 && len(ms.chunks) + 1 == ms.failAt {
    return errors.New("disk full")
  }

  if ms.channels == nil {
    ms.channels = make([][]float64, len(block), len(block))
  }

  for c, data := range block {
    ms.channels[c] = append(ms.channels[c], data...)
  }

  ms.chunks = append(ms.chunks, len(block[0]))
  return nil
}

func testConfig() RenderConfig {
  return RenderConfig{
    Frequency: 136.1,
    Seconds: 3,
    SampleRate: 8000,
    Channels: 1,
    BitDepth: 16,
    Seed: Seed(42),
    ChunkSeconds: 1,
  }
}

func render(t *testing.T, cfg RenderConfig, setup func(r *Renderer)) *memorySink {
  r, err := NewRenderer(cfg)
  Ok(t, err)

  if setup != nil {
    setup(r)
  }

  sink := &memorySink{}
  Ok(t, r.Render(sink, nil))
  return sink
}

func withoutNoise(r *Renderer) {
  r.Noise.GainDb = math.Inf(-1)
}

func TestValidate(t *testing.T) {
  tests := map[string]struct{
    mutate func(c *RenderConfig)
    hasError bool
  }{
    "valid": {
      mutate: func(c *RenderConfig) {},
    },
    "zero frequency": {
      mutate: func(c *RenderConfig) { c.Frequency = 0 },
      hasError: true,
    },
    "negative frequency": {
      mutate: func(c *RenderConfig) { c.Frequency = -136.1 },
      hasError: true,
    },
    "NaN frequency": {
      mutate: func(c *RenderConfig) { c.Frequency = math.NaN() },
      hasError: true,
    },
    "zero duration": {
      mutate: func(c *RenderConfig) { c.Seconds = 0 },
      hasError: true,
    },
    "zero sample rate": {
      mutate: func(c *RenderConfig) { c.SampleRate = 0 },
      hasError: true,
    },
    "three channels": {
      mutate: func(c *RenderConfig) { c.Channels = 3 },
      hasError: true,
    },
    "8 bit": {
      mutate: func(c *RenderConfig) { c.BitDepth = 8 },
      hasError: true,
    },
    "24 bit stereo": {
      mutate: func(c *RenderConfig) { c.BitDepth = 24; c.Channels = 2 },
    },
    "chunk shorter than crossfade": {
      mutate: func(c *RenderConfig) { c.ChunkSeconds = 0.01 },
      hasError: true,
    },
  }

  for name, test := range tests {
    t.Run(name, func(t *testing.T) {
      cfg := testConfig()
      test.mutate(&cfg)
      err := cfg.Validate()

      if test.hasError {
        Assert(t, errors.Is(err, ErrInvalidConfig), "expected ErrInvalidConfig, got %v", err)
      } else {
        Ok(t, err)
      }
    })
  }
}

func TestNewRendererRejectsInvalidConfig(t *testing.T) {
  cfg := testConfig()
  cfg.BitDepth = 32

  r, err := NewRenderer(cfg)
  Assert(t, r == nil, "renderer should be nil")
  Assert(t, errors.Is(err, ErrInvalidConfig), "expected ErrInvalidConfig, got %v", err)
}

func TestConfigFrames(t *testing.T) {
  cfg := RenderConfig{SampleRate: 44100, Seconds: 600}
  Equals(t, 26460000, cfg.TotalFrames())
  Equals(t, 220500, cfg.ChunkFrames())
  Equals(t, 2205, cfg.CrossfadeFrames())

  tiny := RenderConfig{SampleRate: 10, Seconds: 1}
  Equals(t, 1, tiny.CrossfadeFrames())
}

func TestDbToLin(t *testing.T) {
  Near(t, 1.0, DbToLin(0), 1e-12)
  Near(t, 0.5011872336272722, DbToLin(-6), 1e-12)
  Equals(t, 0.0, DbToLin(math.Inf(-1)))
}

func TestEnvelopeBounds(t *testing.T) {
  t0 := timeVector(0, 200000, 1000)
  env := Envelope(t0, 0.01, 0.18, 0)

  for i, e := range env {
    Assert(t, e >= 0.5 * (1 - 0.18) - 1e-12 && e <= 0.5 * (1 + 0.18) + 1e-12, "envelope out of range at %d: %f", i, e)
  }

  Near(t, 0.5, env[0], 1e-12)
}

func TestOscillatorBankIsChunkIndependent(t *testing.T) {
  bank := NewOscillatorBank(136.1, DefaultLayers, []float64{0.1, 1.2, 2.3, 3.4})

  whole := bank.Generate(timeVector(0, 1000, 8000))
  head := bank.Generate(timeVector(0, 333, 8000))
  tail := bank.Generate(timeVector(333, 667, 8000))

  for l := range DefaultLayers {
    joined := append(append([]float64{}, head[l]...), tail[l]...)
    Equals(t, whole[l], joined)
  }

  Near(t, math.Sin(0.1), whole[0][0], 1e-12)
  Near(t, 4 * 136.1 + 0.12, bank.LayerFrequency(3), 1e-12)
}

func TestPinkNoise(t *testing.T) {
  rng := rand.New(rand.NewSource(7))
  noise := PinkNoise(rng, 4000)

  Equals(t, 4000, len(noise))

  peak := 0.0
  for _, s := range noise {
    peak = math.Max(peak, math.Abs(s))
  }
  Near(t, 1.0, peak, 1e-6)

  // independent calls draw fresh noise
  other := PinkNoise(rng, 4000)
  Assert(t, noise[0] != other[0] || noise[1] != other[1], "consecutive noise chunks should differ")

  Equals(t, 0, len(PinkNoise(rng, 0)))
}

func TestBoxFilterAdd(t *testing.T) {
  x := []float64{1, 2, 3, 4, 5}

  out := make([]float64, 5, 5)
  boxFilterAdd(x, 1, out)
  Equals(t, x, out)

  // centred width 2: full convolution sliced from index 0
  out = make([]float64, 5, 5)
  boxFilterAdd(x, 2, out)
  Equals(t, []float64{0.5, 1.5, 2.5, 3.5, 4.5}, out)

  // width 4: offset 1, zero padded at both ends
  out = make([]float64, 5, 5)
  boxFilterAdd(x, 4, out)
  Equals(t, []float64{0.75, 1.5, 2.5, 3.5, 3.0}, out)
}

func TestImage(t *testing.T) {
  mix := []float64{0.5, -0.25, 1.0}
  tv := []float64{0, 100, 200}

  mono := Image(mix, tv, 1)
  Equals(t, 1, len(mono))
  Equals(t, mix, mono[0])

  stereo := Image(mix, tv, 2)
  Equals(t, 2, len(stereo))

  for i := range mix {
    pan := Pan(tv[i])
    Assert(t, pan >= 0.35 - 1e-12 && pan <= 0.65 + 1e-12, "pan out of range: %f", pan)

    // equal power: L^2 + R^2 == mix^2
    power := stereo[0][i] * stereo[0][i] + stereo[1][i] * stereo[1][i]
    Near(t, mix[i] * mix[i], power, 1e-12)
  }

  Near(t, 0.5 + 0.15 * math.Sin(1.3), Pan(0), 1e-12)
}

func TestHighPassChunkedEqualsWhole(t *testing.T) {
  rng := rand.New(rand.NewSource(3))
  signal := make([]float64, 10000, 10000)
  for i := range signal {
    signal[i] = rng.Float64() * 2 - 1
  }

  whole := append([]float64{}, signal...)
  NewHighPass(HighPassCutoff, 8000).Process(whole)

  chunked := append([]float64{}, signal...)
  hp := NewHighPass(HighPassCutoff, 8000)
  for _, bounds := range [][2]int{{0, 1}, {1, 4000}, {4000, 4003}, {4003, 10000}} {
    hp.Process(chunked[bounds[0]:bounds[1]])
  }

  Equals(t, whole, chunked)
  Equals(t, signal[9999], hp.State.PrevInput)
  Equals(t, chunked[9999], hp.State.PrevOutput)
}

func TestHighPassRemovesDC(t *testing.T) {
  hp := NewHighPass(HighPassCutoff, 8000)
  Near(t, math.Exp(-2 * math.Pi * 25 / 8000), hp.Alpha, 1e-15)

  dc := make([]float64, 8000, 8000)
  for i := range dc {
    dc[i] = 1.0
  }
  hp.Process(dc)

  // first sample passes at alpha, then decays
  Near(t, hp.Alpha, dc[0], 1e-15)
  Assert(t, math.Abs(dc[7999]) < 1e-6, "DC should have decayed, got %g", dc[7999])
}

func TestTailBuffer(t *testing.T) {
  tb := NewTailBuffer(3)
  Assert(t, !tb.Full(), "new tail buffer should be empty")
  Assert(t, tb.Commit() != nil, "commit without stage should fail")

  tb.Stage([]float64{1, 2, 3, 4, 5})
  Assert(t, !tb.Full(), "staged data should not be visible before commit")
  Equals(t, 0, len(tb.Data))
  Ok(t, tb.Commit())
  Equals(t, []float64{3, 4, 5}, tb.Data)
  Assert(t, tb.Full(), "tail should be full")

  // shorter than capacity keeps everything
  tb.Stage([]float64{9, 8})
  Ok(t, tb.Commit())
  Equals(t, []float64{9, 8}, tb.Data)
  Assert(t, !tb.Full(), "short tail should not be full")
}

func TestCrossfaderBlend(t *testing.T) {
  xf := NewCrossfader(4, 1)

  first := [][]float64{{1, 1, 1, 1, 1, 1, 10, 20, 30, 40}}
  Assert(t, !xf.Apply(first), "first chunk should not blend")
  xf.Stage(first)
  Ok(t, xf.Commit())
  Equals(t, []float64{10, 20, 30, 40}, xf.Tail(0))

  second := [][]float64{{0, 0, 0, 0, 7, 7}}
  Assert(t, xf.Apply(second), "second chunk should blend")

  // out[j] = new[j]*j/n + tail[j]*(1-j/n)
  Equals(t, []float64{10, 15, 15, 10, 7, 7}, second[0])

  short := [][]float64{{5, 5}}
  Assert(t, !xf.Apply(short), "short chunk should not blend")
  Equals(t, []float64{5, 5}, short[0])
}

func TestLimit(t *testing.T) {
  quiet := [][]float64{{0.1, -0.5}, {0.9, 0.2}}
  Equals(t, 1.0, Limit(quiet, LimiterCeiling))
  Equals(t, [][]float64{{0.1, -0.5}, {0.9, 0.2}}, quiet)

  loud := [][]float64{{0.5, -2.0}, {1.0, 0.0}}
  gain := Limit(loud, LimiterCeiling)
  Near(t, 0.995 / 2.0, gain, 1e-15)
  Near(t, 0.995, Peak(loud), 1e-12)
  Near(t, 0.2487500, loud[0][0], 1e-12)
}
