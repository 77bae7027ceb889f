// Package mutationform drives forms that perform exactly one mutation per
// submission and report the outcome.
//
// A Controller owns the form's input values and its submission state. Submit
// moves the form from idle to submitting, runs the mutation, reacts to the
// outcome and always returns to idle:
//
//   - on failure one error notice carries the error text, and neither the
//     navigation nor the completion callback runs;
//   - on success the form navigates to the outcome location when the
//     mutation produced one, shows the configured success notice, and then
//     invokes the completion callback.
//
// Mutation failures are reported in Result and never returned as errors.
// Submit only returns an error when it refuses to start: another submission
// holds the form (ErrInFlight) or a required field is empty (ErrIncomplete).
package mutationform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/louisbranch/quillroom/internal/services/web/platform/mutationform"

var (
	// ErrInFlight reports a submission refused because another one is running.
	ErrInFlight = errors.New("mutationform: submission already in flight")
	// ErrIncomplete reports a submission refused because a required field is empty.
	ErrIncomplete = errors.New("mutationform: required field is empty")
	// ErrUnknownField reports an update to a field the form does not declare.
	ErrUnknownField = errors.New("mutationform: unknown field")
)

// State is the submission state of a form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

// String returns a lowercase state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Severity classifies a notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is a user-visible outcome message.
type Notice struct {
	Severity Severity
	// Key is an optional localization key; Message is the text to show when
	// the key is empty or untranslated.
	Key     string
	Message string
	// Err is the mutation failure behind an error notice.
	Err error
}

// Field declares one editable input.
type Field struct {
	Name     string
	Required bool
}

// Outcome is what a successful mutation produced.
type Outcome struct {
	// Location is the canonical path of an entity created by the mutation.
	Location string
}

// MutateFunc performs the form's single mutation with a copy of the current
// input values.
type MutateFunc func(ctx context.Context, values map[string]string) (Outcome, error)

// Labels holds the submit control captions.
type Labels struct {
	Submit     string
	Submitting string
}

// Snapshot is the presentation state of a form.
type Snapshot struct {
	State       State
	Values      map[string]string
	CanSubmit   bool
	SubmitLabel string
}

// Result reports how a started submission ended.
type Result struct {
	Outcome Outcome
	// Err is the mutation failure, nil on success.
	Err error
}

// OK reports whether the mutation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Config wires a Controller to its collaborators. Only Mutate is required.
type Config struct {
	Fields  []Field
	Initial map[string]string
	Mutate  MutateFunc

	Notify        func(Notice)
	Navigate      func(location string)
	OnSuccess     func()
	SuccessNotice *Notice
	// Describe turns a mutation failure into notice text. Defaults to
	// err.Error().
	Describe func(error) string

	Labels Labels
	// OnStateChange observes every state or value change.
	OnStateChange func(Snapshot)

	// Guard and Key make submissions exclusive across controllers.
	Guard *Guard
	Key   string

	// Timeout bounds one mutation. Zero means no extra bound.
	Timeout time.Duration

	Logger *zerolog.Logger
	Tracer trace.Tracer
}

// Controller is one mounted form.
type Controller struct {
	mutate        MutateFunc
	notify        func(Notice)
	navigate      func(string)
	onSuccess     func()
	successNotice *Notice
	describe      func(error) string
	labels        Labels
	onStateChange func(Snapshot)
	guard         *Guard
	key           string
	timeout       time.Duration
	logger        zerolog.Logger
	tracer        trace.Tracer

	fields []Field

	mu     sync.Mutex
	values map[string]string
	state  State
}

// New validates cfg and returns an idle controller seeded with the initial
// values.
func New(cfg Config) (*Controller, error) {
	if cfg.Mutate == nil {
		return nil, errors.New("mutationform: mutate function is required")
	}
	if cfg.Guard != nil && strings.TrimSpace(cfg.Key) == "" {
		return nil, errors.New("mutationform: guard requires a key")
	}

	c := &Controller{
		mutate:        cfg.Mutate,
		notify:        cfg.Notify,
		navigate:      cfg.Navigate,
		onSuccess:     cfg.OnSuccess,
		successNotice: cfg.SuccessNotice,
		describe:      cfg.Describe,
		labels:        cfg.Labels,
		onStateChange: cfg.OnStateChange,
		guard:         cfg.Guard,
		key:           strings.TrimSpace(cfg.Key),
		timeout:       cfg.Timeout,
		logger:        zerolog.Nop(),
		tracer:        cfg.Tracer,
		values:        make(map[string]string, len(cfg.Fields)),
	}
	if cfg.Logger != nil {
		c.logger = *cfg.Logger
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(instrumentationName)
	}
	if c.describe == nil {
		c.describe = func(err error) string { return err.Error() }
	}
	if c.labels.Submitting == "" {
		c.labels.Submitting = c.labels.Submit
	}

	for _, field := range cfg.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return nil, errors.New("mutationform: field name is required")
		}
		if _, dup := c.values[name]; dup {
			return nil, fmt.Errorf("mutationform: duplicate field %q", name)
		}
		field.Name = name
		c.fields = append(c.fields, field)
		c.values[name] = ""
	}
	for name, value := range cfg.Initial {
		if _, ok := c.values[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		c.values[name] = value
	}
	return c, nil
}

// SetField records user input for one declared field.
func (c *Controller) SetField(name string, value string) error {
	c.mu.Lock()
	if _, ok := c.values[name]; !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.values[name] = value
	c.mu.Unlock()
	c.publish()
	return nil
}

// Value returns the current value of a field.
func (c *Controller) Value(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[name]
}

// Values returns a copy of every field value.
func (c *Controller) Values() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyValuesLocked()
}

// State returns the submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CanSubmit reports whether the submit control is enabled: nothing is in
// flight and every required field is non-empty.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmitLocked()
}

// SubmitLabel returns the caption for the submit control.
func (c *Controller) SubmitLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitLabelLocked()
}

// Snapshot returns the full presentation state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Submit runs one submission. See the package documentation for the
// sequence of effects.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	values, release, err := c.acquire()
	if err != nil {
		c.logger.Debug().Err(err).Str("form", c.key).Msg("submission refused")
		return Result{}, err
	}
	defer release()
	c.publish()

	ctx, span := c.tracer.Start(ctx, "mutationform.submit", trace.WithAttributes(
		attribute.String("mutationform.key", c.key),
	))
	defer span.End()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	outcome, err := c.mutate(ctx, values)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn().Err(err).Str("form", c.key).Dur("duration", time.Since(started)).Msg("mutation failed")
		c.emit(Notice{Severity: SeverityError, Message: c.describe(err), Err: err})
		return Result{Err: err}, nil
	}

	location := strings.TrimSpace(outcome.Location)
	outcome.Location = location
	if location != "" {
		span.SetAttributes(attribute.String("mutationform.location", location))
		if c.navigate != nil {
			c.navigate(location)
		}
	}
	if c.successNotice != nil {
		c.emit(*c.successNotice)
	}
	if c.onSuccess != nil {
		c.onSuccess()
	}
	span.SetStatus(codes.Ok, "")
	c.logger.Info().Str("form", c.key).Str("location", location).Dur("duration", time.Since(started)).Msg("mutation applied")
	return Result{Outcome: outcome}, nil
}

// acquire moves the form to submitting. The returned release moves it back
// to idle and must run on every exit path.
func (c *Controller) acquire() (map[string]string, func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		return nil, nil, ErrInFlight
	}
	if !c.requiredFilledLocked() {
		return nil, nil, ErrIncomplete
	}
	releaseGuard := func() {}
	if c.guard != nil {
		release, ok := c.guard.TryAcquire(c.key)
		if !ok {
			return nil, nil, ErrInFlight
		}
		releaseGuard = release
	}

	c.state = StateSubmitting
	values := c.copyValuesLocked()
	return values, func() {
		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()
		releaseGuard()
		c.publish()
	}, nil
}

func (c *Controller) emit(notice Notice) {
	if c.notify != nil {
		c.notify(notice)
	}
}

// publish runs the observer outside the lock so it may read the controller.
func (c *Controller) publish() {
	if c.onStateChange == nil {
		return
	}
	c.onStateChange(c.Snapshot())
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:       c.state,
		Values:      c.copyValuesLocked(),
		CanSubmit:   c.canSubmitLocked(),
		SubmitLabel: c.submitLabelLocked(),
	}
}

func (c *Controller) canSubmitLocked() bool {
	if c.state != StateIdle {
		return false
	}
	if c.guard != nil && c.guard.Active(c.key) {
		return false
	}
	return c.requiredFilledLocked()
}

func (c *Controller) requiredFilledLocked() bool {
	for _, field := range c.fields {
		if field.Required && len(c.values[field.Name]) == 0 {
			return false
		}
	}
	return true
}

func (c *Controller) submitLabelLocked() string {
	if c.state == StateSubmitting {
		return c.labels.Submitting
	}
	return c.labels.Submit
}

func (c *Controller) copyValuesLocked() map[string]string {
	out := make(map[string]string, len(c.values))
	for name, value := range c.values {
		out[name] = value
	}
	return out
}
