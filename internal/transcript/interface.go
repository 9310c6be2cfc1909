package transcript

// Turn is one attributed utterance of the dialogue.
// Index is the dense 0..N-1 position in the source transcript.
type Turn struct {
	Index   int
	Speaker string
	Text    string
}

// Record is one entry of a structured conversation as emitted by the summarizer.
type Record struct {
	SpeakerName string `json:"speaker_name" yaml:"speaker_name"`
	Dialogue    string `json:"dialogue" yaml:"dialogue"`
}

// UnknownSpeaker is attached to free-text lines that carry no speaker label.
const UnknownSpeaker = "Unknown"

// DefaultSeparator splits a speaker label from its text.
const DefaultSeparator = ":"
