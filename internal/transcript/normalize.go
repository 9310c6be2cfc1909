package transcript

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/errs"
)

// SchemaError reports a structured record that violates the conversation schema.
type SchemaError struct {
	Index  int
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("conversation record %d: %s", e.Index, e.Reason)
}

// Is reports schema violations as structural errors.
func (e *SchemaError) Is(target error) bool { return target == errs.ErrStructural }

// Normalizer turns raw conversation text into ordered turns.
// Labels are matched as line prefixes before falling back to a generic separator split.
type Normalizer struct {
	Labels    []string
	Separator string
}

// NewNormalizer returns a Normalizer recognising the given speaker labels.
func NewNormalizer(labels ...string) *Normalizer {
	return &Normalizer{Labels: labels, Separator: DefaultSeparator}
}

// Parse splits free-form text into turns, one per non-blank line.
// Empty input yields an empty, non-nil slice.
func (n *Normalizer) Parse(raw string) []Turn {
	turns := make([]Turn, 0)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		speaker, text := n.splitLine(line)
		turns = append(turns, Turn{Index: len(turns), Speaker: speaker, Text: text})
	}
	return turns
}

func (n *Normalizer) splitLine(line string) (string, string) {
	sep := n.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	for _, label := range n.Labels {
		rest, ok := strings.CutPrefix(line, label)
		if !ok {
			continue
		}
		// "Person 10: ..." must not match "Person 1".
		if rest == "" || strings.HasPrefix(rest, sep) {
			return label, strings.TrimSpace(strings.TrimPrefix(rest, sep))
		}
	}

	head, rest, found := strings.Cut(line, sep)
	if !found {
		return UnknownSpeaker, line
	}

	// Models like to bold the label: "**Person 1:** Hello".
	speaker := strings.Trim(head, " *")
	text := strings.TrimSpace(strings.TrimLeft(rest, "*"))
	if label, ok := n.matchLabel(speaker); ok {
		speaker = label
	}
	return speaker, text
}

func (n *Normalizer) matchLabel(speaker string) (string, bool) {
	for _, label := range n.Labels {
		if speaker == label {
			return label, true
		}
	}
	return "", false
}

// FromRecords converts structured records into turns.
// A record without a speaker or with empty dialogue is a SchemaError.
func FromRecords(records []Record) ([]Turn, error) {
	turns := make([]Turn, 0, len(records))
	for i, rec := range records {
		speaker := strings.TrimSpace(rec.SpeakerName)
		text := strings.TrimSpace(rec.Dialogue)
		if speaker == "" {
			return nil, &SchemaError{Index: i, Reason: "missing speaker_name"}
		}
		if text == "" {
			return nil, &SchemaError{Index: i, Reason: "missing or empty dialogue"}
		}
		turns = append(turns, Turn{Index: i, Speaker: speaker, Text: text})
	}
	return turns, nil
}

// DecodeRecords parses a JSON array of records. Markdown code fences around the
// array are tolerated. Anything else is a structural error.
func DecodeRecords(data []byte) ([]Record, error) {
	body := strings.TrimSpace(string(data))
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")

	var records []Record
	if err := json.Unmarshal([]byte(strings.TrimSpace(body)), &records); err != nil {
		return nil, fmt.Errorf("%w: decode conversation: %v", errs.ErrStructural, err)
	}
	return records, nil
}
