// Package speaker maps dialogue speaker labels to voice and avatar profiles.
package speaker

import (
	"fmt"

	"github.com/nguyentantai21042004/dialogue-flow/internal/errs"
)

// Profile binds a speaker label to the voice and reference image used to render it.
type Profile struct {
	SpeakerID      string
	Voice          string
	ReferenceImage string
}

// UnresolvedSpeakerError is returned for a speaker no profile is registered for.
type UnresolvedSpeakerError struct {
	Speaker string
}

func (e *UnresolvedSpeakerError) Error() string {
	return fmt.Sprintf("unresolved speaker %q", e.Speaker)
}

// Is reports unresolved speakers as structural errors.
func (e *UnresolvedSpeakerError) Is(target error) bool { return target == errs.ErrStructural }

// Router resolves speaker labels by exact match. It is read-only after New.
type Router struct {
	profiles map[string]Profile
	order    []string
}

// New registers exactly two profiles with distinct, non-empty speaker ids.
func New(first, second Profile) (*Router, error) {
	r := &Router{profiles: make(map[string]Profile, 2)}
	for _, p := range []Profile{first, second} {
		if p.SpeakerID == "" {
			return nil, fmt.Errorf("speaker profile has empty id")
		}
		if p.Voice == "" {
			return nil, fmt.Errorf("speaker %q has no voice", p.SpeakerID)
		}
		if p.ReferenceImage == "" {
			return nil, fmt.Errorf("speaker %q has no reference image", p.SpeakerID)
		}
		if _, dup := r.profiles[p.SpeakerID]; dup {
			return nil, fmt.Errorf("speaker %q registered twice", p.SpeakerID)
		}
		r.profiles[p.SpeakerID] = p
		r.order = append(r.order, p.SpeakerID)
	}
	return r, nil
}

// Resolve returns the profile registered for speakerID.
func (r *Router) Resolve(speakerID string) (Profile, error) {
	p, ok := r.profiles[speakerID]
	if !ok {
		return Profile{}, &UnresolvedSpeakerError{Speaker: speakerID}
	}
	return p, nil
}

// Speakers returns the registered labels in registration order.
func (r *Router) Speakers() []string {
	return append([]string(nil), r.order...)
}
