package audioio

import(
  "errors"
  "fmt"
  "io"
  "os"
  "github.com/go-audio/audio"
)

// the parts of the go-audio encoders and decoders both containers share
type pcmEncoder interface {
  Write(buf *audio.IntBuffer) error
  Close() error
}

type pcmDecoder interface {
  PCMBuffer(buf *audio.IntBuffer) (int, error)
}

type pcmReader struct {
  AudioFile
  ReadBuffer *audio.IntBuffer
  NumSampleFrames int
  Duration float64
  decoder pcmDecoder
  fileIo *os.File
  framesRead int
}

type pcmWriter struct {
  AudioFile
  WriteBuffer *audio.IntBuffer
  encoder pcmEncoder
  maxSampleValue int
  fileIo *os.File
}

// Getters
func (pr *pcmReader) GetBitDepth() int {
  return pr.BitDepth
}

func (pr *pcmReader) GetSampleRate() int {
  return pr.SampleRate
}

func (pr *pcmReader) GetNumChans() int {
  return pr.NumChans
}

func (pr *pcmReader) GetNumSampleFrames() int {
  return pr.NumSampleFrames
}

func (pr *pcmReader) GetDuration() float64 {
  return pr.Duration
}

func (pr *pcmReader) allocate(bufferLength int) {
  format := &audio.Format{
    NumChannels: pr.NumChans,
    SampleRate: pr.SampleRate,
  }

  pr.ReadBuffer = &audio.IntBuffer{
    Format: format,
    Data: make([]int, bufferLength * pr.NumChans, bufferLength * pr.NumChans),
    SourceBitDepth: pr.BitDepth,
  }
}

// numSamples is the number of samples read across all channels
// numFrames is the number of samples per channel
func (pr *pcmReader) ReadNext() (numSamples, numFrames int, err error) {
  if pr.decoder == nil {
    return 0, 0, errors.New("Reader is not open")
  }

  numSamples, err = pr.decoder.PCMBuffer(pr.ReadBuffer)

  if err == io.EOF {
    err = nil
  }

  numFrames = numSamples / pr.NumChans
  pr.framesRead = numFrames
  return
}

// channel is zero indexed, only the frames of the last read are returned
func (pr *pcmReader) ExtractChannel(channel int) (*audio.IntBuffer, error) {
  if pr.NumChans == 0 {
    return nil, errors.New("Reader has no channels to extract")
  }

  if channel > pr.NumChans - 1 {
    return nil, fmt.Errorf("Requested channel (%d) is out of bounds 0-%d", channel, pr.NumChans - 1)
  }

  buffer := &audio.IntBuffer{
    Format: pr.ReadBuffer.Format,
    Data: make([]int, pr.framesRead, pr.framesRead),
    SourceBitDepth: pr.ReadBuffer.SourceBitDepth,
  }

  x := 0
  for i := channel; x < pr.framesRead; i += pr.NumChans {
    buffer.Data[x] = pr.ReadBuffer.Data[i]
    x++
  }

  return buffer, nil
}

func (pr *pcmReader) Close() error {
  if pr.fileIo == nil {
    return nil
  }

  return pr.fileIo.Close()
}

// create opens the file and sets up the write buffer, newEncoder wraps the
// open file in the container's encoder
func (pw *pcmWriter) create(bufferLength int, newEncoder func(f *os.File) pcmEncoder) error {
  pw.maxSampleValue = IntMaxSignedValue[pw.BitDepth]

  if pw.maxSampleValue == 0 {
    return fmt.Errorf("BitDepth %d returned invalid integer max signed value of 0", pw.BitDepth)
  }

  var err error

  pw.fileIo, err = os.Create(pw.Filepath)

  if err != nil {
    return err
  }

  pw.encoder = newEncoder(pw.fileIo)

  format := &audio.Format{
    NumChannels: pw.NumChans,
    SampleRate: pw.SampleRate,
  }

  pw.WriteBuffer = &audio.IntBuffer{
    Format: format,
    Data: make([]int, bufferLength * pw.NumChans, bufferLength * pw.NumChans),
    SourceBitDepth: pw.BitDepth,
  }

  return nil
}

// Close finalizes the container header and closes the file. It is safe to call
// when create failed.
func (pw *pcmWriter) Close() error {
  var err error

  if pw.encoder != nil {
    err = pw.encoder.Close()
    pw.encoder = nil
  }

  if pw.fileIo != nil {
    if closeErr := pw.fileIo.Close(); err == nil {
      err = closeErr
    }
    pw.fileIo = nil
  }

  return err
}

func (pw *pcmWriter) Write(buffer *audio.IntBuffer) error {
  if pw.encoder == nil {
    return errors.New("Writer is not open")
  }

  // clip gaurd: if any sample in the int buffer exceeds maximum allowed for the
  // buffer's BitDepth, clip the sample instead of letting the encoder have it
  for i := 0; i < len(buffer.Data); i++ {
    if buffer.Data[i] > pw.maxSampleValue {
      buffer.Data[i] = pw.maxSampleValue
    } else if buffer.Data[i] < -pw.maxSampleValue {
      buffer.Data[i] = -pw.maxSampleValue
    }
  }

  return pw.encoder.Write(buffer)
}

func (pw *pcmWriter) ZeroWriteBuffer() {
  for i := 0; i < len(pw.WriteBuffer.Data); i++ {
    pw.WriteBuffer.Data[i] = 0
  }
}

func (pw *pcmWriter) WriteNext() error {
  return pw.Write(pw.WriteBuffer)
}

// SetNumFrames resizes the write buffer, the last chunk of a render is
// usually shorter than the rest
func (pw *pcmWriter) SetNumFrames(numFrames int) {
  numSamples := numFrames * pw.NumChans

  if pw.WriteBuffer == nil {
    pw.WriteBuffer = &audio.IntBuffer{
      Format: &audio.Format{NumChannels: pw.NumChans, SampleRate: pw.SampleRate},
      SourceBitDepth: pw.BitDepth,
    }
  }

  if numSamples <= cap(pw.WriteBuffer.Data) {
    pw.WriteBuffer.Data = pw.WriteBuffer.Data[:numSamples]
  } else {
    pw.WriteBuffer.Data = make([]int, numSamples, numSamples)
  }
}

func (pw *pcmWriter) InterleaveChannel(channel int, data []int) error {
  if len(data) * pw.NumChans != len(pw.WriteBuffer.Data) {
    return errors.New("Data to interleave will not fit exactly into WriteBuffer")
  }

  if channel < 0 || channel >= pw.NumChans {
    return fmt.Errorf("Requested channel (%d) is out of bounds 0-%d", channel, pw.NumChans - 1)
  }

  for frameNumber := 0; frameNumber < len(data); frameNumber++ {
    i := frameNumber * pw.NumChans
    pw.WriteBuffer.Data[i + channel] = data[frameNumber]
  }

  return nil
}
