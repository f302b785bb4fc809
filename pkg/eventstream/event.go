// Package eventstream defines the fragment events exchanged between the relay
// and its consumers, and their `data: <json>\n\n` frame encoding.
package eventstream

// Kind discriminates the cases of an Event
type Kind int

const (
	KindContent Kind = iota
	KindComplete
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindContent:
		return "content"
	case KindComplete:
		return "complete"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one decoded unit of a stream. Exactly one of its cases holds:
// a content fragment (Text), a completion marker, or an error marker (Message).
type Event struct {
	Kind    Kind
	Text    string
	Message string
}

// Content returns a fragment carrying an increment of generated text
func Content(text string) Event {
	return Event{Kind: KindContent, Text: text}
}

// Complete returns the successful terminal marker
func Complete() Event {
	return Event{Kind: KindComplete}
}

// Failure returns the failing terminal marker
func Failure(message string) Event {
	return Event{Kind: KindError, Message: message}
}

// Terminal reports whether no further events may follow e
func (e Event) Terminal() bool {
	return e.Kind == KindComplete || e.Kind == KindError
}
