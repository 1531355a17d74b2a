package main

import(
  "fmt"
  "io"
  "math"
  "os"
  "path/filepath"
  "time"
  "sfe/analysis"
  "sfe/audioio"
  "sfe/charter"
  "sfe/cli"
  "sfe/synth"
  "github.com/schollz/progressbar/v3"
  "golang.org/x/term"
)

var Version = ""

// frames per read when inspecting a file
const inspectBufferLength = 8192

// chart floor for silent chunks, echarts cannot encode -Inf
const chartFloorDb = -120.0

// fileSink is what a render needs from an audio file writer.
type fileSink interface {
  synth.Sink
  Create(bufferLength int) error
  Close() error
}

type sinkFactory func(audioFile audioio.AudioFile) (fileSink, error)

func newAudioSink(audioFile audioio.AudioFile) (fileSink, error) {
  audioWriter, err := audioio.NewAudioWriter(audioFile)

  if err != nil {
    return nil, err
  }

  return audioWriter, nil
}

func main() {
  // parse cli flags/arguments
  parsedArgs, err := cli.ParseFlags(os.Args)

  if err != nil {
    if cli.IsHelp(err) {
      os.Exit(0)
    }

    fmt.Fprintln(os.Stderr, err)
    os.Exit(1)
  }

  switch parsedArgs.Command {
  case cli.RenderCommand:
    // no bar when output is piped or redirected
    showProgress := !parsedArgs.Quiet && term.IsTerminal(int(os.Stdout.Fd()))
    err = render(parsedArgs, os.Stdout, showProgress, time.Now(), newAudioSink)
  case cli.InspectCommand:
    err = inspect(parsedArgs, os.Stdout)
  }

  if err != nil {
    fmt.Fprintf(os.Stderr, "\n >>> %v <<<\n\n", err)
    os.Exit(1)
  }
}

func render(parsedArgs *cli.Arguments, stdout io.Writer, showProgress bool, now time.Time, newSink sinkFactory) error {
  // validate everything before touching the filesystem
  renderer, err := synth.NewRenderer(parsedArgs.RenderConfig())

  if err != nil {
    return err
  }

  outputPath, err := cli.BuildOutputPath(parsedArgs, now)

  if err != nil {
    return err
  }

  audioFile := audioio.AudioFile{
    Filepath: outputPath,
    NumChans: parsedArgs.Channels(),
    SampleRate: parsedArgs.SampleRate,
    BitDepth: parsedArgs.BitDepth,
  }

  sink, err := newSink(audioFile)

  if err != nil {
    return fmt.Errorf("Could not create output audio file: %w", err)
  }

  if err = sink.Create(renderer.Config.ChunkFrames()); err != nil {
    return fmt.Errorf("Could not open audio file for writing %s: %w", outputPath, err)
  }

  defer sink.Close()

  if !parsedArgs.Quiet {
    if len(Version) > 0 {
      fmt.Fprintf(stdout, "%24s   %s\n", "Version:", Version)
    }

    fmt.Fprint(stdout, renderer.String())
    fmt.Fprintf(stdout, "%24s   %s\n", "Output:", outputPath)
  }

  if len(parsedArgs.SavePresetPath) > 0 {
    // the seed actually used, so the preset reproduces this render
    preset := cli.PresetFromArguments(parsedArgs)
    preset.Seed = synth.Seed(renderer.Seed)

    if err = preset.Save(parsedArgs.SavePresetPath); err != nil {
      return fmt.Errorf("saving preset: %w", err)
    }
  }

  bar := progressbar.NewOptions(
    renderer.TotalFrames(),
    progressbar.OptionEnableColorCodes(true),
    progressbar.OptionSetDescription("rendering..."),
    progressbar.OptionFullWidth(),
    progressbar.OptionSetTheme(progressbar.Theme{
      Saucer:        "[green]=[reset]",
      SaucerHead:    "[green]=[reset]",
      SaucerPadding: " ",
      BarStart:      "[",
      BarEnd:        "]",
    }),
  )

  err = renderer.Render(sink, func(framesWritten, totalFrames int) {
    if showProgress {
      bar.Set(framesWritten)
    }
  })

  if err != nil {
    return err
  }

  // the header is only complete once the encoder is closed
  if err = sink.Close(); err != nil {
    return fmt.Errorf("finalising %s: %w", outputPath, err)
  }

  if showProgress {
    fmt.Fprintln(stdout)
    fmt.Fprintln(stdout)
  }

  fmt.Fprintf(
    stdout,
    "Wrote: %s  sr=%dHz  bit=%d  ch=%d  dur=%dm\n",
    outputPath,
    parsedArgs.SampleRate,
    parsedArgs.BitDepth,
    parsedArgs.Channels(),
    parsedArgs.Minutes,
  )

  return nil
}

func inspect(parsedArgs *cli.Arguments, stdout io.Writer) error {
  // check if input file exists
  if _, err := os.Stat(parsedArgs.InputPath); err != nil {
    return fmt.Errorf("File does not exist: %s", parsedArgs.InputPath)
  }

  audioReader, err := audioio.NewAudioReader(parsedArgs.InputPath)

  if err != nil {
    return err
  }

  if err = audioReader.Open(inspectBufferLength); err != nil {
    return fmt.Errorf("Could not open audio file %s: %w", parsedArgs.InputPath, err)
  }

  defer audioReader.Close()

  sampleRate := audioReader.GetSampleRate()
  chunkFrames := int(float64(sampleRate) * parsedArgs.ChunkSeconds)
  stats := analysis.NewStats(chunkFrames)
  pitchSamples := make([]float64, 0, analysis.MaxSpectrumPoints)

  for {
    block, err := audioReader.ReadFloats()

    if err != nil {
      return fmt.Errorf("reading %s at frame %d: %w", parsedArgs.InputPath, stats.Frames, err)
    }

    if block == nil {
      break
    }

    stats.Add(block)

    if room := cap(pitchSamples) - len(pitchSamples); room > 0 {
      if room > len(block[0]) {
        room = len(block[0])
      }

      pitchSamples = append(pitchSamples, block[0][:room]...)
    }
  }

  if stats.Frames != audioReader.GetNumSampleFrames() {
    return fmt.Errorf(
      "%s is truncated: header promises %d frames, read %d",
      parsedArgs.InputPath,
      audioReader.GetNumSampleFrames(),
      stats.Frames,
    )
  }

  dominant, err := analysis.DominantFrequency(pitchSamples, sampleRate, parsedArgs.WindowName)

  if err != nil {
    return err
  }

  if !parsedArgs.Quiet {
    fmt.Fprintf(stdout, "%24s   %s\n", "File:", parsedArgs.InputPath)
    fmt.Fprintf(stdout, "%24s   %d\n", "Number of Channels:", audioReader.GetNumChans())
    fmt.Fprintf(stdout, "%24s   %d\n", "Bit Depth:", audioReader.GetBitDepth())
    fmt.Fprintf(stdout, "%24s   %d\n", "Sample Rate:", sampleRate)
    fmt.Fprintf(stdout, "%24s   %d\n", "Frames:", stats.Frames)
    fmt.Fprintf(stdout, "%24s   %.2f s\n", "Duration:", audioReader.GetDuration())
    fmt.Fprintf(stdout, "%24s   %.2f dBFS\n", "Peak:", analysis.Decibels(stats.Peak()))
    fmt.Fprintf(stdout, "%24s   %.2f dBFS\n", "RMS:", analysis.Decibels(stats.RMS()))
    fmt.Fprintf(stdout, "%24s   %d frames\n", "Chunk Length:", chunkFrames)
    fmt.Fprintf(stdout, "%24s   %.3f\n", "Seam Ratio:", stats.SeamRatio())
    fmt.Fprintf(stdout, "%24s   %s\n", "Window:", parsedArgs.WindowName)
  }

  fmt.Fprintf(stdout, "%24s   %.2f Hz\n", "Dominant Frequency:", dominant)

  if len(parsedArgs.ChartPath) > 0 {
    peaks := stats.ChunkPeaks()
    peaksDb := make([]float64, len(peaks), len(peaks))

    for i, peak := range peaks {
      peaksDb[i] = math.Max(analysis.Decibels(peak), chartFloorDb)
    }

    err = charter.MakeChart(
      parsedArgs.ChartPath,
      "Chunk Peaks (dBFS)",
      filepath.Base(parsedArgs.InputPath),
      charter.Series{Name: "peak", Data: peaksDb},
    )

    if err != nil {
      return fmt.Errorf("writing chart: %w", err)
    }

    if !parsedArgs.Quiet {
      fmt.Fprintf(stdout, "%24s   %s\n", "Chart:", parsedArgs.ChartPath)
    }
  }

  return nil
}
