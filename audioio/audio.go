package audioio

import(
  "os"
  "fmt"
  "github.com/go-audio/audio"
  "bytes"
  "math"
  "path/filepath"
  "strings"
)

var IntMaxSignedValue = map[int]int {
  8: 127,
  16: 32767,
  24: 8388607,
  32: 2147483647,
}

const TYPE_INVALID = -1
const TYPE_AIFF = 1
const TYPE_WAVE = 2

type Reader interface {
  Open(bufferLength int) error
  Close() error
  ReadNext() (int, int, error)
  ExtractChannel(channel int) (*audio.IntBuffer, error)
  GetBitDepth() int
  GetSampleRate() int
  GetNumChans() int
  GetNumSampleFrames() int
  GetDuration() float64
}

type Writer interface {
  Create(bufferLength int) error
  Close() error
  Write(buffer *audio.IntBuffer) error
  WriteNext() error
  InterleaveChannel(channel int, data []int) error
  ZeroWriteBuffer()
  SetNumFrames(numFrames int)
}

type AudioFile struct {
  Filepath string
  NumChans int
  BitDepth int
  SampleRate int
}

type AudioReader struct {
  Reader Reader
  fileType int
}

// AudioWriter is the render sink: it takes float chunks in [-1, 1] and encodes
// them at the file's bit depth, in the order they arrive.
type AudioWriter struct {
  Writer Writer
  AudioFile
  fileType int
}

// determines a filetype based on the given file extension, the file does not have to exist
func returnFileTypeFromExtension(filePath string) (int, error) {
  extension := strings.ToLower(filepath.Ext(filePath))

  switch extension {
  case ".aiff":
    return TYPE_AIFF, nil
  case ".aif":
    return TYPE_AIFF, nil
  case ".wave":
    return TYPE_WAVE, nil
  case ".wav":
    return TYPE_WAVE, nil
  }

  return TYPE_INVALID, fmt.Errorf("Invalid File Type")
}

// HasAudioExtension reports whether the writer can pick a container from the
// extension of filePath.
func HasAudioExtension(filePath string) bool {
  _, err := returnFileTypeFromExtension(filePath)
  return err == nil
}

// Reades the magic bytes of the given file and returns the file type const.
// File must exist on disk
func returnFileType(filePath string) (int, error) {
  file, err := os.Open(filePath)

  if err != nil {
    return TYPE_INVALID, err
  }

  defer file.Close()

  headerBytes := make([]byte, 12)
  if _, err := file.Read(headerBytes); err != nil {
    return TYPE_INVALID, err
  }
  headerBytes8 := []byte{}
  headerBytes8 = append(headerBytes8, headerBytes[:4]...)
  headerBytes8 = append(headerBytes8, headerBytes[8:]...)

  if bytes.Equal(headerBytes8, []byte("FORMAIFF")) {
    return TYPE_AIFF, nil
  } else if bytes.Equal(headerBytes8, []byte("RIFFWAVE")) {
    return TYPE_WAVE, nil
  }

  return TYPE_INVALID, fmt.Errorf("Invalid File Type")
}

// FloatsToInts scales samples in [-1, 1] to the integer range of bitDepth,
// rounding to the nearest step.
func FloatsToInts(data []float64, bitDepth int) []int {
  maxValue := float64(IntMaxSignedValue[bitDepth])
  buffer := make([]int, len(data), len(data))

  for i := 0; i < len(data); i++ {
    buffer[i] = int(math.Round(data[i] * maxValue))
  }

  return buffer
}

func IntsToFloats(data []int, bitDepth int) []float64 {
  maxValue := float64(IntMaxSignedValue[bitDepth])
  buffer := make([]float64, len(data), len(data))

  for i := 0; i < len(data); i++ {
    buffer[i] = float64(data[i]) / maxValue
  }

  return buffer
}

func NewAudioReader(filePath string) (ar *AudioReader, err error) {
  ar = &AudioReader{}

  fileType, err := returnFileType(filePath)

  if err != nil {
    return nil, err
  }

  switch fileType {
  case TYPE_AIFF:
    audioFile := AudioFile{Filepath: filePath}
    ar.Reader = &AiffReader{pcmReader: pcmReader{AudioFile: audioFile}}
    ar.fileType = TYPE_AIFF
  case TYPE_WAVE:
    audioFile := AudioFile{Filepath: filePath}
    ar.Reader = &WaveReader{pcmReader: pcmReader{AudioFile: audioFile}}
    ar.fileType = TYPE_WAVE
  default:
    return nil, fmt.Errorf("AudioReader doesn't implement filetype %d", fileType)
  }

  return ar, nil
}

// delegate to the reader
func (ar *AudioReader) Open(bufferLength int) (err error) {
  return ar.Reader.Open(bufferLength)
}

func (ar *AudioReader) Close() error {
  return ar.Reader.Close()
}

func (ar *AudioReader) ReadNext() (int, int, error) {
  return ar.Reader.ReadNext()
}

func (ar *AudioReader) ExtractChannel(channel int) (*audio.IntBuffer, error) {
  return ar.Reader.ExtractChannel(channel)
}

func (ar *AudioReader) GetNumChans() int {
  return ar.Reader.GetNumChans()
}

func (ar *AudioReader) GetBitDepth() int {
  return ar.Reader.GetBitDepth()
}

func (ar *AudioReader) GetSampleRate() int {
  return ar.Reader.GetSampleRate()
}

func (ar *AudioReader) GetNumSampleFrames() int {
  return ar.Reader.GetNumSampleFrames()
}

func (ar *AudioReader) GetDuration() float64 {
  return ar.Reader.GetDuration()
}

func (ar *AudioReader) FileType() int {
  return ar.fileType
}

// ReadFloats reads the next buffer and returns it channel major, scaled to
// [-1, 1]. A nil block means the end of the file was reached.
func (ar *AudioReader) ReadFloats() ([][]float64, error) {
  _, numFrames, err := ar.ReadNext()

  if err != nil {
    return nil, err
  }

  if numFrames == 0 {
    return nil, nil
  }

  block := make([][]float64, ar.GetNumChans(), ar.GetNumChans())

  for c := range block {
    buffer, err := ar.ExtractChannel(c)

    if err != nil {
      return nil, err
    }

    block[c] = IntsToFloats(buffer.Data, ar.GetBitDepth())
  }

  return block, nil
}

// Audio Writer
func NewAudioWriter(audioFile AudioFile) (aw *AudioWriter, err error) {
  aw = &AudioWriter{AudioFile: audioFile}

  if IntMaxSignedValue[audioFile.BitDepth] == 0 {
    return nil, fmt.Errorf("Unsupported bit depth %d", audioFile.BitDepth)
  }

  if audioFile.NumChans < 1 {
    return nil, fmt.Errorf("AudioWriter needs at least one channel, got %d", audioFile.NumChans)
  }

  fileType, err := returnFileTypeFromExtension(audioFile.Filepath)

  if err != nil {
    return nil, err
  }

  switch fileType {
  case TYPE_AIFF:
    aw.Writer = &AiffWriter{pcmWriter: pcmWriter{AudioFile: audioFile}}
    aw.fileType = TYPE_AIFF
  case TYPE_WAVE:
    aw.Writer = &WaveWriter{pcmWriter: pcmWriter{AudioFile: audioFile}}
    aw.fileType = TYPE_WAVE
  default:
    return nil, fmt.Errorf("AudioWriter doesn't implement filetype %d", fileType)
  }

  return aw, nil
}

// delegate to Writer
func (aw *AudioWriter) Create(bufferLength int) error {
  return aw.Writer.Create(bufferLength)
}

func (aw *AudioWriter) Close() error {
  return aw.Writer.Close()
}

func (aw *AudioWriter) ZeroWriteBuffer() {
  aw.Writer.ZeroWriteBuffer()
}

func (aw *AudioWriter) InterleaveChannel(channel int, data []int) error {
  return aw.Writer.InterleaveChannel(channel, data)
}

func (aw *AudioWriter) WriteNext() error {
  return aw.Writer.WriteNext()
}

func (aw *AudioWriter) FileType() int {
  return aw.fileType
}

// WriteFrames encodes one channel major chunk.
func (aw *AudioWriter) WriteFrames(block [][]float64) error {
  if len(block) != aw.NumChans {
    return fmt.Errorf("Chunk has %d channels, file has %d", len(block), aw.NumChans)
  }

  numFrames := len(block[0])
  aw.Writer.SetNumFrames(numFrames)
  aw.ZeroWriteBuffer()

  for c, data := range block {
    if len(data) != numFrames {
      return fmt.Errorf("Channel %d has %d frames, expected %d", c, len(data), numFrames)
    }

    if err := aw.InterleaveChannel(c, FloatsToInts(data, aw.BitDepth)); err != nil {
      return err
    }
  }

  return aw.WriteNext()
}
