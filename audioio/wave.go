package audioio

import(
  "errors"
  "os"
  "github.com/go-audio/wav"
)

type WaveReader struct {
  pcmReader
}

type WaveWriter struct {
  pcmWriter
}

// bufferLength: how many frames to read at one time
func (wr *WaveReader) Open(bufferLength int) error {
  var err error

  wr.fileIo, err = os.Open(wr.Filepath)

  if err != nil {
    return err
  }

  decoder := wav.NewDecoder(wr.fileIo)

  decoder.ReadInfo()

  if decoder.NumChans == 0 {
    return errors.New("WaveReader.decoder.NumChans is 0")
  }

  if decoder.SampleRate == 0 {
    return errors.New("WaveReader.decoder.SampleRate is 0")
  }

  if decoder.BitDepth == 0 {
    return errors.New("WaveReader.decoder.BitDepth is 0")
  }

  wr.NumChans = int(decoder.NumChans)
  wr.BitDepth = int(decoder.BitDepth)
  wr.SampleRate = int(decoder.SampleRate)

  // the decoder's Duration counts the header bytes as audio, the data chunk
  // size does not
  if err = decoder.FwdToPCM(); err != nil {
    return err
  }

  bytesPerFrame := wr.NumChans * ((wr.BitDepth + 7) / 8)
  wr.NumSampleFrames = decoder.PCMSize / bytesPerFrame
  wr.Duration = float64(wr.NumSampleFrames) / float64(wr.SampleRate)
  wr.decoder = decoder
  wr.allocate(bufferLength)

  return nil
}

func (wr *WaveWriter) Create(bufferLength int) error {
  return wr.create(bufferLength, func(f *os.File) pcmEncoder {
    return wav.NewEncoder(
      f,
      wr.SampleRate,
      wr.BitDepth,
      wr.NumChans,
      1, // Linear PCM
    )
  })
}
