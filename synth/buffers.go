package synth

import(
  "fmt"
)

// TailBuffer keeps the last samples of a channel for the next chunk's
// crossfade. New tails are staged first and only become visible on Commit.
type TailBuffer struct {
  Data []float64
  staged []float64
  capacity int
  hasReceivedData bool
  hasStaged bool
}

func NewTailBuffer(length int) (buffer *TailBuffer) {
  buffer = &TailBuffer{
    Data: make([]float64, 0, length),
    staged: make([]float64, 0, length),
    capacity: length,
  }

  return buffer
}

// Full is true once a tail of the full crossfade length is held.
func (tb *TailBuffer) Full() bool {
  return tb.hasReceivedData && len(tb.Data) == tb.capacity
}

// Stage copies the last capacity samples of data, or all of it when data is
// shorter.
func (tb *TailBuffer) Stage(data []float64) {
  start := len(data) - tb.capacity

  if start < 0 {
    start = 0
  }

  tb.staged = append(tb.staged[:0], data[start:]...)
  tb.hasStaged = true
}

func (tb *TailBuffer) Commit() error {
  if !tb.hasStaged {
    return fmt.Errorf("TailBuffer has no staged tail to commit")
  }

  tb.Data, tb.staged = tb.staged, tb.Data
  tb.hasStaged = false
  tb.hasReceivedData = true

  return nil
}
