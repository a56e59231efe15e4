// Package mutation runs create, update and delete against the API and
// reconciles the page by reloading the whole list afterwards.
package mutation

import (
	"context"
	stdErrors "errors"
	"sync"

	"github.com/aimingmed/sctracker-console/internal/forms"
	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
	"github.com/aimingmed/sctracker-console/pkg/logger"
)

// ErrNotConfirmed is returned when a delete arrives without confirmation.
var ErrNotConfirmed = stdErrors.New("delete not confirmed")

// Mode says which variant of the form the modal shows.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Form is anything the flow can submit. Key identifies the record on edit.
type Form interface {
	Key() string
}

// RoleGate answers whether the current session holds any of the allowed roles.
type RoleGate interface {
	HasAnyRole(allowed ...string) bool
}

// Reloader refreshes the bound list from the API.
type Reloader interface {
	Load(ctx context.Context) error
}

// Ops are the API calls behind the flow. Nil ops are rejected as internal errors.
type Ops[F Form] struct {
	Create func(ctx context.Context, form F) error
	Update func(ctx context.Context, key string, form F) error
	Delete func(ctx context.Context, key string) error
}

// Modal is the create/edit dialog state.
type Modal[F Form] struct {
	Open        bool
	Mode        Mode
	Form        F
	Err         string
	FieldErrors forms.FieldErrors
}

type Options[F Form] struct {
	Gate    RoleGate
	Allowed []string
	List    Reloader
	Ops     Ops[F]
	// Validate defaults to forms.Validate.
	Validate func(F) forms.FieldErrors
	Logger   *logger.Logger
}

// Flow is one page's mutation state machine.
type Flow[F Form] struct {
	mu       sync.Mutex
	gate     RoleGate
	allowed  []string
	list     Reloader
	ops      Ops[F]
	validate func(F) forms.FieldErrors
	logg     *logger.Logger

	busy   bool
	modal  Modal[F]
	errMsg string
}

func New[F Form](opts Options[F]) *Flow[F] {
	validate := opts.Validate
	if validate == nil {
		validate = func(form F) forms.FieldErrors { return forms.Validate(form) }
	}
	return &Flow[F]{
		gate:     opts.Gate,
		allowed:  append([]string(nil), opts.Allowed...),
		list:     opts.List,
		ops:      opts.Ops,
		validate: validate,
		logg:     opts.Logger,
	}
}

// CanMutate is the UX gate for showing mutation buttons.
func (f *Flow[F]) CanMutate() bool {
	return f.permitted(f.allowed)
}

// OpenCreate shows a blank create form.
func (f *Flow[F]) OpenCreate(blank F) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modal = Modal[F]{Open: true, Mode: ModeCreate, Form: blank}
}

// OpenEdit shows the edit form prefilled from a loaded record.
func (f *Flow[F]) OpenEdit(form F) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modal = Modal[F]{Open: true, Mode: ModeEdit, Form: form}
}

func (f *Flow[F]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modal = Modal[F]{}
}

func (f *Flow[F]) Modal() Modal[F] {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.modal
	if m.FieldErrors != nil {
		m.FieldErrors = make(forms.FieldErrors, len(f.modal.FieldErrors))
		for k, v := range f.modal.FieldErrors {
			m.FieldErrors[k] = v
		}
	}
	return m
}

// Err is the message of the last failed table-level action such as a delete.
func (f *Flow[F]) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

func (f *Flow[F]) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Submit sends the modal's form. parseErrs carries failures found while
// decoding the request; when empty the form is validated here.
// Order: busy, validation, role check, API call, reload.
func (f *Flow[F]) Submit(ctx context.Context, mode Mode, form F, parseErrs forms.FieldErrors) error {
	if !f.acquire() {
		return pkgerrors.New(pkgerrors.CodeBusy, "")
	}
	defer f.release()

	f.mu.Lock()
	f.modal.Open, f.modal.Mode, f.modal.Form = true, mode, form
	f.mu.Unlock()

	fieldErrs := parseErrs
	if len(fieldErrs) == 0 {
		fieldErrs = f.validate(form)
	}
	if len(fieldErrs) > 0 {
		f.setModalErr("", fieldErrs)
		return fieldErrs.Err()
	}

	if !f.permitted(f.allowed) {
		err := pkgerrors.New(pkgerrors.CodeForbidden, "")
		f.setModalErr(pkgerrors.UserMessage(err), nil)
		return err
	}

	var err error
	switch mode {
	case ModeCreate:
		if f.ops.Create == nil {
			err = pkgerrors.New(pkgerrors.CodeInternal, "create is not supported")
		} else {
			err = f.ops.Create(ctx, form)
		}
	case ModeEdit:
		if f.ops.Update == nil {
			err = pkgerrors.New(pkgerrors.CodeInternal, "update is not supported")
		} else {
			err = f.ops.Update(ctx, form.Key(), form)
		}
	default:
		err = pkgerrors.New(pkgerrors.CodeInternal, "unknown form mode")
	}
	if err != nil {
		f.logFailure(ctx, "mutation failed", err)
		f.setModalErr(pkgerrors.UserMessage(err), nil)
		return err
	}

	f.mu.Lock()
	f.modal = Modal[F]{}
	f.errMsg = ""
	f.mu.Unlock()
	f.reload(ctx)
	return nil
}

// Delete removes a record. Without confirmation nothing happens.
func (f *Flow[F]) Delete(ctx context.Context, key string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return f.Action(ctx, f.allowed, func(ctx context.Context) error {
		if f.ops.Delete == nil {
			return pkgerrors.New(pkgerrors.CodeInternal, "delete is not supported")
		}
		return f.ops.Delete(ctx, key)
	})
}

// Action runs a table-level call gated by its own allow-list, then reloads.
// Failures are kept in Err.
func (f *Flow[F]) Action(ctx context.Context, allowed []string, call func(ctx context.Context) error) error {
	if !f.acquire() {
		return pkgerrors.New(pkgerrors.CodeBusy, "")
	}
	defer f.release()

	if !f.permitted(allowed) {
		err := pkgerrors.New(pkgerrors.CodeForbidden, "")
		f.setErr(pkgerrors.UserMessage(err))
		return err
	}
	if err := call(ctx); err != nil {
		f.logFailure(ctx, "action failed", err)
		f.setErr(pkgerrors.UserMessage(err))
		return err
	}
	f.setErr("")
	f.reload(ctx)
	return nil
}

func (f *Flow[F]) permitted(allowed []string) bool {
	return f.gate != nil && len(allowed) > 0 && f.gate.HasAnyRole(allowed...)
}

func (f *Flow[F]) acquire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return false
	}
	f.busy = true
	return true
}

func (f *Flow[F]) release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
}

func (f *Flow[F]) setModalErr(msg string, fieldErrs forms.FieldErrors) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modal.Err = msg
	f.modal.FieldErrors = fieldErrs
}

func (f *Flow[F]) setErr(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errMsg = msg
}

// reload errors stay on the list controller, which renders them with the table.
func (f *Flow[F]) reload(ctx context.Context) {
	if f.list == nil {
		return
	}
	if err := f.list.Load(ctx); err != nil {
		f.logFailure(ctx, "reload after mutation failed", err)
	}
}

func (f *Flow[F]) logFailure(ctx context.Context, msg string, err error) {
	if f.logg == nil {
		return
	}
	f.logg.Warn(f.logg.WithField(ctx, "error", err.Error()), msg)
}
