package eventstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// ContentType is the media type of a relay response
	ContentType = "text/event-stream"

	dataPrefix = "data:"
)

// Separator terminates every frame
var Separator = []byte("\n\n")

// ErrMalformedFrame is returned for frames that do not decode into an event
var ErrMalformedFrame = errors.New("malformed frame")

// payload is the JSON object carried by a frame. Content and Error are
// pointers so absent fields can be told apart from empty strings.
type payload struct {
	Content *string `json:"content,omitempty"`
	Error   *string `json:"error,omitempty"`
	Done    bool    `json:"done"`
}

// Encode renders e as one complete frame, separator included
func Encode(e Event) ([]byte, error) {
	var p payload
	switch e.Kind {
	case KindContent:
		p = payload{Content: &e.Text, Done: false}
	case KindComplete:
		p = payload{Done: true}
	case KindError:
		p = payload{Error: &e.Message, Done: true}
	default:
		return nil, fmt.Errorf("unknown event kind %d", e.Kind)
	}

	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}

	frame := make([]byte, 0, len("data: ")+len(body)+len(Separator))
	frame = append(frame, "data: "...)
	frame = append(frame, body...)
	frame = append(frame, Separator...)
	return frame, nil
}

// Decode parses one frame, without its separator, into an event. Lines that
// do not carry the data prefix are rejected, as are payloads matching none of
// the content, completion or error shapes. A content fragment with empty text
// decodes successfully; callers treat it as a no-op.
func Decode(frame []byte) (Event, error) {
	frame = bytes.TrimRight(frame, "\r\n")
	if len(bytes.TrimSpace(frame)) == 0 {
		return Event{}, fmt.Errorf("%w: empty frame", ErrMalformedFrame)
	}

	var data []byte
	for i, line := range bytes.Split(frame, []byte("\n")) {
		line = bytes.TrimSuffix(line, []byte("\r"))
		if !bytes.HasPrefix(line, []byte(dataPrefix)) {
			return Event{}, fmt.Errorf("%w: line %d lacks data prefix", ErrMalformedFrame, i)
		}
		value := bytes.TrimPrefix(line[len(dataPrefix):], []byte(" "))
		if data != nil {
			data = append(data, '\n')
		}
		data = append(data, value...)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch {
	case p.Error != nil:
		return Failure(*p.Error), nil
	case p.Done:
		return Complete(), nil
	case p.Content != nil:
		return Content(*p.Content), nil
	default:
		return Event{}, fmt.Errorf("%w: payload has no content, error or done", ErrMalformedFrame)
	}
}
