package client

import (
	"strings"
	"testing"

	"github.com/inkwell-labs/inkwell/pkg/eventstream"
	"github.com/stretchr/testify/assert"
)

func TestReassemblerPush(t *testing.T) {
	var rb Reassembler

	assert.Empty(t, rb.Push([]byte(`data: {"content":"a","do`)))
	assert.Equal(t, 24, rb.Len())

	frames := rb.Push([]byte("ne\":false}\n"))
	assert.Empty(t, frames, "half a separator completes nothing")

	frames = rb.Push([]byte("\ndata: {\"done\":true}\n\ndata: {\"con"))
	assert.Equal(t, [][]byte{
		[]byte(`data: {"content":"a","done":false}`),
		[]byte(`data: {"done":true}`),
	}, frames)

	assert.Equal(t, []byte(`data: {"con`), rb.Flush())
	assert.Zero(t, rb.Len())
}

func TestReassemblerFramesDoNotAlias(t *testing.T) {
	var rb Reassembler
	first := rb.Push([]byte("data: 1\n\ndata: 2"))
	rb.Push([]byte("overwrite me please\n\n"))

	assert.Equal(t, "data: 1", string(first[0]))
}

func TestReassemblerByteAtATime(t *testing.T) {
	var rb Reassembler
	big := "data: {\"content\":\"" + strings.Repeat("x", 4096) + "\"}"
	stream := big + "\n\n" + "data: {\"done\":true}\n\n"

	var frames []string
	for i := 0; i < len(stream); i++ {
		for _, f := range rb.Push([]byte{stream[i]}) {
			frames = append(frames, string(f))
		}
		// only the trailing byte can still begin a separator
		assert.LessOrEqual(t, rb.Len()-rb.scanned, len(eventstream.Separator)-1)
	}

	assert.Equal(t, []string{big, `data: {"done":true}`}, frames)
	assert.Zero(t, rb.Len())
}

func TestReassemblerResumesAfterFlush(t *testing.T) {
	var rb Reassembler
	rb.Push([]byte("data: partial\n"))
	assert.Equal(t, []byte("data: partial\n"), rb.Flush())

	assert.Equal(t, [][]byte{[]byte("x")}, rb.Push([]byte("x\n\n")))
}
