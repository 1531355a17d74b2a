package synth

import(
  "math"
)

const twoPi float64 = math.Pi * 2

// LayerSpec describes one harmonic layer of the drone.
type LayerSpec struct {
  Ratio float64
  GainDb float64
  DetuneHz float64
  LfoRate float64
  LfoDepth float64
}

// NoiseSpec describes the pink noise wash.
type NoiseSpec struct {
  GainDb float64
  LfoRate float64
  LfoDepth float64
}

// fundamental plus three harmonics, each slightly detuned for slow beating
var DefaultLayers = []LayerSpec {
  {Ratio: 1.0, GainDb: -16, DetuneHz: 0.00, LfoRate: 0.010, LfoDepth: 0.18},
  {Ratio: 2.0, GainDb: -20, DetuneHz: 0.07, LfoRate: 0.006, LfoDepth: 0.16},
  {Ratio: 3.0, GainDb: -24, DetuneHz: -0.09, LfoRate: 0.004, LfoDepth: 0.12},
  {Ratio: 4.0, GainDb: -28, DetuneHz: 0.12, LfoRate: 0.003, LfoDepth: 0.10},
}

var DefaultNoise = NoiseSpec{
  GainDb: -32,
  LfoRate: 0.005,
  LfoDepth: 0.35,
}

const DefaultMasterGainDb = -6.0

func DbToLin(db float64) float64 {
  return math.Pow(10, db / 20.0)
}

// Envelope is 0.5 * (1 + depth * sin(2*pi*rate*t + phase)) for every t.
func Envelope(t []float64, rate, depth, phase float64) []float64 {
  env := make([]float64, len(t), len(t))

  for i := 0; i < len(t); i++ {
    env[i] = 0.5 * (1.0 + depth * math.Sin(twoPi * rate * t[i] + phase))
  }

  return env
}

func (l LayerSpec) Envelope(t []float64) []float64 {
  return Envelope(t, l.LfoRate, l.LfoDepth, 0)
}

func (n NoiseSpec) Envelope(t []float64) []float64 {
  return Envelope(t, n.LfoRate, n.LfoDepth, 0)
}

// OscillatorBank holds the fixed per-layer phase offsets. A layer's output is a
// pure function of absolute time, so it does not matter where chunks start.
type OscillatorBank struct {
  Fundamental float64
  Layers []LayerSpec
  Phases []float64
}

func NewOscillatorBank(fundamental float64, layers []LayerSpec, phases []float64) *OscillatorBank {
  return &OscillatorBank{
    Fundamental: fundamental,
    Layers: layers,
    Phases: phases,
  }
}

func (ob *OscillatorBank) LayerFrequency(layer int) float64 {
  return ob.Layers[layer].Ratio * ob.Fundamental + ob.Layers[layer].DetuneHz
}

// Generate returns one waveform per layer, each the length of t.
func (ob *OscillatorBank) Generate(t []float64) [][]float64 {
  waves := make([][]float64, len(ob.Layers), len(ob.Layers))

  for l := range ob.Layers {
    freq := ob.LayerFrequency(l)
    phase := ob.Phases[l]
    wave := make([]float64, len(t), len(t))

    for i := 0; i < len(t); i++ {
      wave[i] = math.Sin(twoPi * freq * t[i] + phase)
    }

    waves[l] = wave
  }

  return waves
}

// Mix sums the enveloped layers and the enveloped noise, each scaled by its gain.
func Mix(t []float64, layers []LayerSpec, waves [][]float64, noise NoiseSpec, noiseWave []float64) []float64 {
  mix := make([]float64, len(t), len(t))

  for l, layer := range layers {
    gain := DbToLin(layer.GainDb)
    env := layer.Envelope(t)

    for i := 0; i < len(t); i++ {
      mix[i] += waves[l][i] * env[i] * gain
    }
  }

  if noiseWave != nil {
    gain := DbToLin(noise.GainDb)
    env := noise.Envelope(t)

    for i := 0; i < len(t); i++ {
      mix[i] += noiseWave[i] * env[i] * gain
    }
  }

  return mix
}
