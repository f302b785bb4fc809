package client

import (
	"bytes"

	"github.com/inkwell-labs/inkwell/pkg/eventstream"
)

// Reassembler turns chunks read from a stream into whole frames. Chunks may
// split a frame anywhere, including inside its separator.
type Reassembler struct {
	buf []byte
	// scanned is how much of buf is known to hold no separator start
	scanned int
}

// Push appends chunk and returns every frame it completed, in order and
// without their separators. Returned frames do not alias the buffer.
func (r *Reassembler) Push(chunk []byte) [][]byte {
	r.buf = append(r.buf, chunk...)

	var frames [][]byte
	start, from := 0, r.scanned
	for {
		i := bytes.Index(r.buf[from:], eventstream.Separator)
		if i < 0 {
			break
		}
		end := from + i
		frames = append(frames, bytes.Clone(r.buf[start:end]))
		start = end + len(eventstream.Separator)
		from = start
	}

	if start > 0 {
		n := copy(r.buf, r.buf[start:])
		r.buf = r.buf[:n]
	}
	// the tail may hold the first bytes of a separator split across chunks
	r.scanned = max(0, len(r.buf)-(len(eventstream.Separator)-1))
	return frames
}

// Flush returns whatever is left after the last separator and empties the buffer
func (r *Reassembler) Flush() []byte {
	rest := r.buf
	r.buf = nil
	r.scanned = 0
	return rest
}

// Len is the number of buffered bytes not yet part of a frame
func (r *Reassembler) Len() int {
	return len(r.buf)
}
