package ui

import (
	"context"
	"fmt"

	"journal-api/pkg/journalapi"
)

// Msg is an event fed to Update.
type Msg interface{ isMsg() }

// Cmd is deferred I/O. Program runs it off the update loop and feeds the
// returned Msg back in.
type Cmd func(ctx context.Context, b Backend) Msg

/* ───────── user events ───────── */

// LoadRequested (re)loads the journal list.
type LoadRequested struct{}

// AddClicked opens an empty create dialog.
type AddClicked struct{}

// EditClicked opens the edit dialog for a listed journal.
type EditClicked struct{ ID int64 }

// DeleteClicked deletes a listed journal and reloads.
type DeleteClicked struct{ ID int64 }

// FieldChanged edits one dialog field.
type FieldChanged struct{ Field, Value string }

// SubmitClicked creates or updates depending on the dialog.
type SubmitClicked struct{}

// CancelClicked closes the dialog without saving.
type CancelClicked struct{}

// Dismissed removes notification Index.
type Dismissed struct{ Index int }

/* ───────── I/O results ───────── */

type JournalsLoaded struct{ Journals []journalapi.JournalResponse }
type LoadFailed struct{ Err error }
type Saved struct{ Journal journalapi.JournalResponse }
type SaveFailed struct{ Err error }
type Deleted struct{ ID int64 }
type DeleteFailed struct {
	ID  int64
	Err error
}

func (LoadRequested) isMsg()  {}
func (AddClicked) isMsg()     {}
func (EditClicked) isMsg()    {}
func (DeleteClicked) isMsg()  {}
func (FieldChanged) isMsg()   {}
func (SubmitClicked) isMsg()  {}
func (CancelClicked) isMsg()  {}
func (Dismissed) isMsg()      {}
func (JournalsLoaded) isMsg() {}
func (LoadFailed) isMsg()     {}
func (Saved) isMsg()          {}
func (SaveFailed) isMsg()     {}
func (Deleted) isMsg()        {}
func (DeleteFailed) isMsg()   {}

// Update applies msg to m. It performs no I/O.
func Update(m Model, msg Msg) (Model, Cmd) {
	switch msg := msg.(type) {
	case LoadRequested:
		m.Loading = true
		return m, loadJournals

	case JournalsLoaded:
		m.Loading = false
		m.Journals = msg.Journals
		if m.Journals == nil {
			m.Journals = []journalapi.JournalResponse{}
		}
		return m, nil

	case LoadFailed:
		m.Loading = false
		return m.notify(fmt.Sprintf("Failed to load journals: %v", msg.Err)), nil

	case AddClicked:
		m.Dialog = &Dialog{}
		return m, nil

	case EditClicked:
		j, ok := m.find(msg.ID)
		if !ok {
			return m.notify(fmt.Sprintf("Journal #%d is not in the list", msg.ID)), nil
		}
		m.Dialog = &Dialog{Editing: &j, Form: j.Request()}
		return m, nil

	case FieldChanged:
		if m.Dialog == nil || m.Dialog.Submitting {
			return m, nil
		}
		d := *m.Dialog
		if err := setField(&d.Form, msg.Field, msg.Value); err != nil {
			return m.notify(err.Error()), nil
		}
		m.Dialog = &d
		return m, nil

	case SubmitClicked:
		if m.Dialog == nil || m.Dialog.Submitting {
			return m, nil
		}
		d := *m.Dialog
		d.Submitting = true
		m.Dialog = &d
		return m, saveJournal(d.Editing, d.Form)

	case Saved:
		m.Dialog = nil
		m.Loading = true
		return m, loadJournals

	case SaveFailed:
		if m.Dialog != nil {
			d := *m.Dialog
			d.Submitting = false
			m.Dialog = &d
		}
		return m.notify(fmt.Sprintf("Failed to save journal: %v", msg.Err)), nil

	case CancelClicked:
		m.Dialog = nil
		return m, nil

	case DeleteClicked:
		return m, deleteJournal(msg.ID)

	case Deleted:
		m.Loading = true
		return m, loadJournals

	case DeleteFailed:
		return m.notify(fmt.Sprintf("Failed to delete journal #%d: %v", msg.ID, msg.Err)), nil

	case Dismissed:
		if msg.Index < 0 || msg.Index >= len(m.Notifications) {
			return m, nil
		}
		rest := make([]string, 0, len(m.Notifications)-1)
		rest = append(rest, m.Notifications[:msg.Index]...)
		m.Notifications = append(rest, m.Notifications[msg.Index+1:]...)
		return m, nil
	}
	return m, nil
}

/* ───────── commands ───────── */

func loadJournals(ctx context.Context, b Backend) Msg {
	list, err := b.List(ctx)
	if err != nil {
		return LoadFailed{Err: err}
	}
	return JournalsLoaded{Journals: list}
}

func saveJournal(editing *journalapi.JournalResponse, form journalapi.JournalRequest) Cmd {
	return func(ctx context.Context, b Backend) Msg {
		var (
			out journalapi.JournalResponse
			err error
		)
		if editing == nil {
			out, err = b.Create(ctx, form)
		} else {
			out, err = b.Update(ctx, editing.ID, form)
		}
		if err != nil {
			return SaveFailed{Err: err}
		}
		return Saved{Journal: out}
	}
}

func deleteJournal(id int64) Cmd {
	return func(ctx context.Context, b Backend) Msg {
		if _, err := b.Delete(ctx, id); err != nil {
			return DeleteFailed{ID: id, Err: err}
		}
		return Deleted{ID: id}
	}
}
