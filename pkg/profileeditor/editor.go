// Package profileeditor drives the volunteer profile edit workflow: load the
// profile, flip between viewing and editing, and save changes back. The last
// server-confirmed profile is kept separately from the in-progress draft, so
// cancel always restores exactly what the server last returned and a failed
// save never loses the user's edits.
package profileeditor

import (
	"context"
	"errors"

	"github.com/volunteerhub/volunteerhub/pkg/profileclient"
)

// State is the top-level editor state.
type State string

const (
	// StateLoading means the initial profile fetch is in progress.
	StateLoading State = "loading"
	// StateError means the initial fetch failed. Retry re-enters loading.
	StateError State = "error"
	// StateViewing shows the committed profile.
	StateViewing State = "viewing"
	// StateEditing has an active draft seeded from the committed profile.
	StateEditing State = "editing"
)

// ProfileService is the part of the API the editor needs. *profileclient.Client
// satisfies it.
type ProfileService interface {
	GetProfile(ctx context.Context) (*profileclient.Profile, error)
	UpdateProfile(ctx context.Context, req profileclient.UpdateRequest) (*profileclient.Profile, error)
}

// Form holds the draft field values while editing. Skills mirror the
// comma-separated text input of the browser form and are parsed on save.
type Form struct {
	Description string
	SkillsInput string
	CV          string
	Privacy     string
}

// Editor is the profile edit state machine. It is not safe for concurrent use;
// like the browser page it models, all transitions happen on one goroutine.
type Editor struct {
	service ProfileService

	state     State
	committed *profileclient.Profile
	form      Form

	loadErr error
	saveErr error
	saving  bool
}

// ErrNotEditing is returned by transitions that require an active draft.
var ErrNotEditing = errors.New("profileeditor: no edit in progress")

// New creates an editor in the loading state. Call Load to fetch the profile.
func New(service ProfileService) *Editor {
	return &Editor{service: service, state: StateLoading}
}

// State returns the current top-level state.
func (e *Editor) State() State { return e.state }

// Profile returns the last server-confirmed profile, or nil before the first
// successful load.
func (e *Editor) Profile() *profileclient.Profile { return e.committed }

// Form returns the current draft values. Only meaningful while editing.
func (e *Editor) Form() Form { return e.form }

// LoadError returns the error from a failed initial load.
func (e *Editor) LoadError() error { return e.loadErr }

// SaveError returns the error from the most recent failed save, cleared on
// the next save attempt or cancel.
func (e *Editor) SaveError() error { return e.saveErr }

// Saving reports whether a save is in flight.
func (e *Editor) Saving() bool { return e.saving }

// Load fetches the profile. On failure the editor enters the error state;
// calling Load again retries.
func (e *Editor) Load(ctx context.Context) error {
	e.state = StateLoading
	e.loadErr = nil

	profile, err := e.service.GetProfile(ctx)
	if err != nil {
		e.state = StateError
		e.loadErr = err
		return err
	}

	e.committed = profile
	e.state = StateViewing
	return nil
}

// Edit enters editing, seeding the form from the committed profile. Unsaved
// values from a previous abandoned edit are never carried over.
func (e *Editor) Edit() error {
	if e.state != StateViewing {
		return errors.New("profileeditor: can only edit a loaded profile")
	}

	cv := ""
	if e.committed.CV != nil {
		cv = *e.committed.CV
	}
	e.form = Form{
		Description: e.committed.Volunteer.Description,
		SkillsInput: JoinSkills(e.committed.Skills),
		CV:          cv,
		Privacy:     e.committed.Privacy,
	}
	e.state = StateEditing
	return nil
}

// Cancel discards the draft and returns to viewing the committed profile.
func (e *Editor) Cancel() error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.form = Form{}
	e.saveErr = nil
	e.state = StateViewing
	return nil
}

// SetDescription updates the draft description, truncating to the maximum
// length as typed.
func (e *Editor) SetDescription(s string) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.form.Description = TruncateDescription(s)
	return nil
}

// SetSkillsInput updates the raw comma-separated skills text.
func (e *Editor) SetSkillsInput(s string) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.form.SkillsInput = s
	return nil
}

// SetCV updates the draft CV reference. Ignored when the server declared the
// cv field unavailable; other fields stay editable.
func (e *Editor) SetCV(s string) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	if e.FieldUnavailable("cv") {
		return nil
	}
	e.form.CV = s
	return nil
}

// SetPrivacy updates the draft visibility ("public" or "private").
func (e *Editor) SetPrivacy(s string) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.form.Privacy = s
	return nil
}

// FieldUnavailable reports whether the server declared the named field
// unsupported.
func (e *Editor) FieldUnavailable(field string) bool {
	if e.committed == nil {
		return false
	}
	return e.committed.FieldUnavailable(field)
}

// Save submits the draft. On success the returned profile becomes the new
// committed state and the editor returns to viewing. On failure the editor
// stays in editing with the draft and an error message intact.
func (e *Editor) Save(ctx context.Context) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}

	var cv *string
	if e.form.CV != "" {
		v := e.form.CV
		cv = &v
	}
	req := profileclient.UpdateRequest{
		Description: TruncateDescription(e.form.Description),
		Skills:      ParseSkills(e.form.SkillsInput),
		CV:          cv,
		Privacy:     e.form.Privacy,
	}

	e.saving = true
	e.saveErr = nil
	profile, err := e.service.UpdateProfile(ctx, req)
	e.saving = false

	if err != nil {
		e.saveErr = err
		return err
	}

	e.committed = profile
	e.form = Form{}
	e.state = StateViewing
	return nil
}
