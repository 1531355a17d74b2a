package main

import(
  "bytes"
  "errors"
  "os"
  "path/filepath"
  "strings"
  "testing"
  "time"
  "sfe/audioio"
  "sfe/cli"
  "sfe/synth"
  . "sfe/testing_utilities"
)

var errDiskFull = errors.New("disk full")

// failingSink accepts failAt chunks, then fails every write.
type failingSink struct {
  failAt int
  writes int
  created bool
  closed bool
}

func (fs *failingSink) Create(bufferLength int) error {
  fs.created = true
  return nil
}

func (fs *failingSink) Close() error {
  fs.closed = true
  return nil
}

func (fs *failingSink) WriteFrames(block [][]float64) error {
  if fs.writes >= fs.failAt {
    return errDiskFull
  }

  fs.writes++
  return nil
}

func renderArgs(root string) *cli.Arguments {
  return &cli.Arguments{
    Command: cli.RenderCommand,
    Frequency: 136.1,
    Minutes: 1,
    SampleRate: 8000,
    BitDepth: 16,
    Seed: synth.Seed(42),
    RootDir: root,
    OutputName: "drone",
    Quiet: true,
  }
}

var renderTime = time.Date(2024, 3, 9, 7, 5, 4, 0, time.UTC)

func TestRenderValidatesBeforeCreatingFiles(t *testing.T) {
  root := t.TempDir()
  args := renderArgs(root)
  args.BitDepth = 8

  factoryCalled := false
  err := render(args, &bytes.Buffer{}, false, renderTime, func(audioio.AudioFile) (fileSink, error) {
    factoryCalled = true
    return &failingSink{}, nil
  })

  Assert(t, errors.Is(err, synth.ErrInvalidConfig), "expected ErrInvalidConfig, got %v", err)
  Assert(t, !factoryCalled, "no writer should be made for an invalid config")

  _, err = os.Stat(filepath.Join(root, cli.OutputDirName))
  Assert(t, os.IsNotExist(err), "the output directory should not be created, got %v", err)
}

func TestRenderClosesSinkOnWriteError(t *testing.T) {
  sink := &failingSink{failAt: 2}
  stdout := &bytes.Buffer{}

  err := render(renderArgs(t.TempDir()), stdout, false, renderTime, func(audioio.AudioFile) (fileSink, error) {
    return sink, nil
  })

  Assert(t, errors.Is(err, errDiskFull), "expected the sink error, got %v", err)
  Assert(t, strings.Contains(err.Error(), "frame 80000"), "error should name the failing frame: %v", err)
  Assert(t, sink.created, "sink should have been created")
  Assert(t, sink.closed, "sink should be closed after a failed write")
  Equals(t, 2, sink.writes)
  Assert(t, !strings.Contains(stdout.String(), "Wrote:"), "a failed render should not report a file")
}

func TestRenderWritesFileAndPreset(t *testing.T) {
  root := t.TempDir()
  args := renderArgs(root)
  args.Seed = nil
  args.SavePresetPath = filepath.Join(root, "drone.yaml")
  stdout := &bytes.Buffer{}

  Ok(t, render(args, stdout, false, renderTime, newAudioSink))

  outputPath := filepath.Join(root, "wav", "drone.wav")
  Equals(t, "Wrote: " + outputPath + "  sr=8000Hz  bit=16  ch=1  dur=1m\n", stdout.String())

  reader, err := audioio.NewAudioReader(outputPath)
  Ok(t, err)
  Ok(t, reader.Open(4096))
  Equals(t, 480000, reader.GetNumSampleFrames())
  Ok(t, reader.Close())

  // the preset pins the seed that was drawn
  preset, err := cli.LoadPreset(args.SavePresetPath)
  Ok(t, err)
  Assert(t, preset.Seed != nil, "saved preset should carry a seed")
  Equals(t, 136.1, preset.Frequency)
  Equals(t, "drone", preset.Out)
}

func TestInspectRenderedFile(t *testing.T) {
  root := t.TempDir()
  Ok(t, render(renderArgs(root), &bytes.Buffer{}, false, renderTime, newAudioSink))

  chartPath := filepath.Join(root, "peaks.html")
  stdout := &bytes.Buffer{}

  err := inspect(&cli.Arguments{
    Command: cli.InspectCommand,
    InputPath: filepath.Join(root, "wav", "drone.wav"),
    ChunkSeconds: synth.DefaultChunkSeconds,
    WindowName: "hamming",
    ChartPath: chartPath,
  }, stdout)
  Ok(t, err)

  report := stdout.String()
  Assert(t, strings.Contains(report, "480000"), "frames missing from report:\n%s", report)
  Assert(t, strings.Contains(report, "60.00 s"), "duration missing from report:\n%s", report)
  Assert(t, strings.Contains(report, "Dominant Frequency:   13"), "pitch missing from report:\n%s", report)

  chart, err := os.ReadFile(chartPath)
  Ok(t, err)
  Assert(t, bytes.Contains(chart, []byte("Chunk Peaks")), "chart should carry its title")
}

func TestInspectMissingFile(t *testing.T) {
  err := inspect(&cli.Arguments{InputPath: filepath.Join(t.TempDir(), "none.wav"), WindowName: "hamming"}, &bytes.Buffer{})
  Assert(t, err != nil, "a missing file should be an error")
}
