package cli

import(
  "fmt"
  "os"
  "path/filepath"
  "time"
  "sfe/audioio"
)

const OutputDirName = "wav"
const timestampLayout = "20060102_150405"

// DefaultName is sfe_<freq>hz_<minutes>m_<sr>sr_<bit>bit_<mo|st>_<timestamp>.wav
func DefaultName(args *Arguments, now time.Time) string {
  channels := "mo"
  if args.Stereo {
    channels = "st"
  }

  return fmt.Sprintf(
    "sfe_%.1fhz_%dm_%dsr_%dbit_%s_%s.wav",
    args.Frequency,
    args.Minutes,
    args.SampleRate,
    args.BitDepth,
    channels,
    now.Format(timestampLayout),
  )
}

// OutputFileName keeps only the base name of an explicit name and makes sure
// it ends in an audio extension, .wav unless it already has one.
func OutputFileName(args *Arguments, now time.Time) string {
  name := filepath.Base(args.OutputName)

  if len(args.OutputName) == 0 || name == "." || name == string(filepath.Separator) {
    return DefaultName(args, now)
  }

  if !audioio.HasAudioExtension(name) {
    name += ".wav"
  }

  return name
}

// BuildOutputPath returns <root>/wav/<name>, creating the wav directory when it
// does not exist yet.
func BuildOutputPath(args *Arguments, now time.Time) (string, error) {
  outDir := filepath.Join(args.RootDir, OutputDirName)

  if err := os.MkdirAll(outDir, 0o755); err != nil {
    return "", fmt.Errorf("creating output directory: %w", err)
  }

  return filepath.Join(outDir, OutputFileName(args, now)), nil
}
