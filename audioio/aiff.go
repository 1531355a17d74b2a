package audioio

import(
  "errors"
  "os"
  "github.com/go-audio/aiff"
)

type AiffReader struct {
  pcmReader
}

type AiffWriter struct {
  pcmWriter
}

// bufferLength: how many frames to read at one time
func (ar *AiffReader) Open(bufferLength int) error {
  var err error

  ar.fileIo, err = os.Open(ar.Filepath)

  if err != nil {
    return err
  }

  decoder := aiff.NewDecoder(ar.fileIo)

  decoder.ReadInfo()

  if decoder.NumChans == 0 {
    return errors.New("AiffReader.decoder.NumChans is 0")
  }

  if decoder.SampleRate == 0 {
    return errors.New("AiffReader.decoder.SampleRate is 0")
  }

  if decoder.BitDepth == 0 {
    return errors.New("AiffReader.decoder.BitDepth is 0")
  }

  ar.NumChans = int(decoder.NumChans)
  ar.BitDepth = int(decoder.BitDepth)
  ar.SampleRate = int(decoder.SampleRate)
  ar.NumSampleFrames = int(decoder.NumSampleFrames)
  ar.Duration = float64(ar.NumSampleFrames) / float64(ar.SampleRate)
  ar.decoder = decoder
  ar.allocate(bufferLength)

  return nil
}

func (aw *AiffWriter) Create(bufferLength int) error {
  return aw.create(bufferLength, func(f *os.File) pcmEncoder {
    return aiff.NewEncoder(
      f,
      aw.SampleRate,
      aw.BitDepth,
      aw.NumChans,
    )
  })
}
