package cli

import(
  "errors"
  "flag"
  "fmt"
  "io"
  "path/filepath"
  "strconv"
  "strings"
  "sfe/analysis"
  "sfe/synth"
)

const RenderCommand = "render"
const InspectCommand = "inspect"

type Arguments struct {
  Command string
  Quiet bool

  // render
  Frequency float64
  Minutes int
  SampleRate int
  BitDepth int
  Stereo bool
  Seed *int64
  OutputName string
  RootDir string
  Overlap bool
  PresetPath string
  SavePresetPath string

  // inspect
  InputPath string
  ChunkSeconds float64
  WindowName string
  ChartPath string
}

// RenderConfig turns render arguments into the engine's config.
func (a *Arguments) RenderConfig() synth.RenderConfig {
  channels := 1
  if a.Stereo {
    channels = 2
  }

  return synth.RenderConfig{
    Frequency: a.Frequency,
    Seconds: float64(a.Minutes) * 60,
    SampleRate: a.SampleRate,
    Channels: channels,
    BitDepth: a.BitDepth,
    Seed: a.Seed,
    Overlap: a.Overlap,
  }
}

func (a *Arguments) Channels() int {
  return a.RenderConfig().Channels
}

var cmdError = fmt.Errorf("usage: sfe <command> <args>\n\nAvailable Commands:\n\n    render    render an ambient drone to a WAV file\n    inspect   report levels, seams and pitch of a rendered file\n\nFor specific command options:\n\nsfe <command> -h\n\n")

// ParseFlags parses os.Args style arguments, args[0] being the program name.
func ParseFlags(args []string) (*Arguments, error) {
  return parseFlags(args, nil)
}

func parseFlags(args []string, output io.Writer) (*Arguments, error) {
  if len(args) < 2 {
    return nil, cmdError
  }

  switch args[1] {
  case RenderCommand:
    return parseRender(args[2:], output)
  case InspectCommand:
    return parseInspect(args[2:], output)
  }

  return nil, cmdError
}

func newFlagSet(name string, output io.Writer) *flag.FlagSet {
  fs := flag.NewFlagSet(name, flag.ContinueOnError)

  if output != nil {
    fs.SetOutput(output)
  }

  return fs
}

func parseRender(args []string, output io.Writer) (*Arguments, error) {
  renderCmd := newFlagSet(RenderCommand, output)
  renderFreq := renderCmd.Float64("freq", 0, "fundamental frequency in Hz, e.g. 136.1 (required)")
  renderMinutes := renderCmd.Int("minutes", 10, "duration in minutes")
  renderSampleRate := renderCmd.Int("sr", synth.DefaultSampleRate, "sample rate")
  renderBitDepth := renderCmd.Int("bit", 16, "bit depth: 16 or 24")
  renderStereo := renderCmd.Bool("stereo", false, "stereo output with slow pan drift (default mono)")
  renderSeed := renderCmd.String("seed", "", "deterministic seed: integer, random when omitted")
  renderOut := renderCmd.String("out", "", "basename of the output file, saved into wav/ under the root directory. Names ending in .aif or .aiff write AIFF")
  renderRoot := renderCmd.String("root", ".", "root directory: output goes to <root>/wav/")
  renderOverlap := renderCmd.Bool("overlap", false, "crossfade chunks with rendered lookahead instead of replaying the previous chunk's tail")
  renderPreset := renderCmd.String("preset", "", "YAML preset with any of: freq, minutes, sr, bit, stereo, seed, out, overlap. Flags given on the command line win")
  renderSavePreset := renderCmd.String("save-preset", "", "write the settings of this render, seed included, as a YAML preset to this path")
  renderQuiet := renderCmd.Bool("q", false, "quiet flag: suppress informational output")

  if err := renderCmd.Parse(args); err != nil {
    return nil, err
  }

  parsedArgs := &Arguments{
    Command: RenderCommand,
    Frequency: *renderFreq,
    Minutes: *renderMinutes,
    SampleRate: *renderSampleRate,
    BitDepth: *renderBitDepth,
    Stereo: *renderStereo,
    OutputName: strings.TrimSpace(*renderOut),
    Overlap: *renderOverlap,
    PresetPath: *renderPreset,
    Quiet: *renderQuiet,
  }

  if len(*renderSeed) > 0 {
    seed, err := strconv.ParseInt(*renderSeed, 10, 64)

    if err != nil {
      return nil, fmt.Errorf("Invalid seed %q: must be an integer", *renderSeed)
    }

    parsedArgs.Seed = &seed
  }

  if len(parsedArgs.PresetPath) > 0 {
    preset, err := LoadPreset(parsedArgs.PresetPath)

    if err != nil {
      return nil, err
    }

    explicit := map[string]bool{}
    renderCmd.Visit(func(f *flag.Flag) {
      explicit[f.Name] = true
    })

    preset.apply(parsedArgs, explicit)
  }

  if parsedArgs.Frequency == 0 {
    return nil, fmt.Errorf("Required argument missing:\n\n-freq <fundamental in Hz> is required, for help:\n\nsfe render -h\n\n")
  }

  if parsedArgs.Minutes <= 0 {
    return nil, fmt.Errorf("Invalid duration: -minutes must be a positive integer, got %d", parsedArgs.Minutes)
  }

  if err := parsedArgs.RenderConfig().Validate(); err != nil {
    return nil, err
  }

  rootDir, err := filepath.Abs(*renderRoot)

  if err != nil {
    return nil, err
  }

  parsedArgs.RootDir = rootDir

  if len(*renderSavePreset) > 0 {
    parsedArgs.SavePresetPath, _ = filepath.Abs(*renderSavePreset)
  }

  return parsedArgs, nil
}

func parseInspect(args []string, output io.Writer) (*Arguments, error) {
  inspectCmd := newFlagSet(InspectCommand, output)
  inspectInput := inspectCmd.String("i", "", "input file: path to a WAV or AIFF file")
  inspectChunk := inspectCmd.Float64("chunk", synth.DefaultChunkSeconds, "chunk length in seconds the file was rendered with, used to find seams")
  inspectWindow := inspectCmd.String("w", "hamming", "window: windowing function for the pitch estimate, one of: " + analysis.WindowNamesString())
  inspectChart := inspectCmd.String("chart", "", "chart file: write an HTML chart of chunk peaks to this path")
  inspectQuiet := inspectCmd.Bool("q", false, "quiet flag: only print the summary line")

  if err := inspectCmd.Parse(args); err != nil {
    return nil, err
  }

  if len(*inspectInput) == 0 {
    return nil, fmt.Errorf("Required argument missing:\n\n-i <path to input file> is required, for help:\n\nsfe inspect -h\n\n")
  }

  if !(*inspectChunk > 0) {
    return nil, fmt.Errorf("Invalid chunk length: -chunk must be > 0, got %f", *inspectChunk)
  }

  if !analysis.IsWindow(*inspectWindow) {
    return nil, fmt.Errorf("Invalid window %q, one of: %s", *inspectWindow, analysis.WindowNamesString())
  }

  parsedArgs := &Arguments{
    Command: InspectCommand,
    ChunkSeconds: *inspectChunk,
    WindowName: *inspectWindow,
    Quiet: *inspectQuiet,
  }

  parsedArgs.InputPath, _ = filepath.Abs(*inspectInput)

  if len(*inspectChart) > 0 {
    parsedArgs.ChartPath, _ = filepath.Abs(*inspectChart)
  }

  return parsedArgs, nil
}

// IsHelp reports whether err is the result of -h, which has already printed
// the usage.
func IsHelp(err error) bool {
  return errors.Is(err, flag.ErrHelp)
}
