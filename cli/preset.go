package cli

import(
  "fmt"
  "os"
  "strings"
  "gopkg.in/yaml.v3"
)

// Preset holds render defaults read from a YAML file. Zero values leave the
// flag value alone.
type Preset struct {
  Frequency float64 `yaml:"freq"`
  Minutes int `yaml:"minutes"`
  SampleRate int `yaml:"sr"`
  BitDepth int `yaml:"bit"`
  Stereo bool `yaml:"stereo"`
  Seed *int64 `yaml:"seed"`
  Out string `yaml:"out"`
  Overlap bool `yaml:"overlap"`
}

// PresetFromArguments captures the render settings of args.
func PresetFromArguments(args *Arguments) *Preset {
  preset := &Preset{
    Frequency: args.Frequency,
    Minutes: args.Minutes,
    SampleRate: args.SampleRate,
    BitDepth: args.BitDepth,
    Stereo: args.Stereo,
    Out: args.OutputName,
    Overlap: args.Overlap,
  }

  if args.Seed != nil {
    seed := *args.Seed
    preset.Seed = &seed
  }

  return preset
}

func LoadPreset(path string) (*Preset, error) {
  data, err := os.ReadFile(path)

  if err != nil {
    return nil, fmt.Errorf("reading preset: %w", err)
  }

  preset := &Preset{}
  if err := yaml.Unmarshal(data, preset); err != nil {
    return nil, fmt.Errorf("parsing preset %s: %w", path, err)
  }

  return preset, nil
}

func (p *Preset) Save(path string) error {
  data, err := yaml.Marshal(p)

  if err != nil {
    return err
  }

  return os.WriteFile(path, data, 0o644)
}

// apply copies preset values into args for every flag not named in explicit.
func (p *Preset) apply(args *Arguments, explicit map[string]bool) {
  if !explicit["freq"] && p.Frequency != 0 {
    args.Frequency = p.Frequency
  }

  if !explicit["minutes"] && p.Minutes != 0 {
    args.Minutes = p.Minutes
  }

  if !explicit["sr"] && p.SampleRate != 0 {
    args.SampleRate = p.SampleRate
  }

  if !explicit["bit"] && p.BitDepth != 0 {
    args.BitDepth = p.BitDepth
  }

  if !explicit["stereo"] && p.Stereo {
    args.Stereo = true
  }

  if !explicit["seed"] && p.Seed != nil {
    seed := *p.Seed
    args.Seed = &seed
  }

  if !explicit["out"] && len(strings.TrimSpace(p.Out)) > 0 {
    args.OutputName = strings.TrimSpace(p.Out)
  }

  if !explicit["overlap"] && p.Overlap {
    args.Overlap = true
  }
}
