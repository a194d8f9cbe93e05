package orm

import (
	"context"
	"reflect"

	"go.uber.org/zap"
)

// SaveOptions are passed through to the Persister.
type SaveOptions struct {
	Select               []string
	Omit                 []string
	SkipHooks            bool
	FullSaveAssociations bool
}

// SaveOption configures a single Save call.
type SaveOption func(*SaveOptions)

// Select limits the save to the given columns.
func Select(columns ...string) SaveOption {
	return func(o *SaveOptions) { o.Select = append(o.Select, columns...) }
}

// Omit excludes the given columns from the save.
func Omit(columns ...string) SaveOption {
	return func(o *SaveOptions) { o.Omit = append(o.Omit, columns...) }
}

// SkipHooks saves without running model hooks.
func SkipHooks() SaveOption {
	return func(o *SaveOptions) { o.SkipHooks = true }
}

// FullSaveAssociations upserts associations along with the record.
func FullSaveAssociations() SaveOption {
	return func(o *SaveOptions) { o.FullSaveAssociations = true }
}

// Persister stores a model, creating or updating it as appropriate.
type Persister[T any] interface {
	Persist(ctx context.Context, model *T, opts SaveOptions) error
}

// Record couples a model with the validation result computed when the
// record was built.
type Record[T any] struct {
	model      *T
	rules      Rules
	validation *Validation
}

// RecordOption configures NewRecord.
type RecordOption func(*recordConfig)

type recordConfig struct {
	rules    Rules
	hasRules bool
}

// WithRules overrides the rules the model declares through Validatable.
// nil disables validation.
func WithRules(rules Rules) RecordOption {
	return func(c *recordConfig) {
		c.rules = rules
		c.hasRules = true
	}
}

// NewRecord wraps model and, if it has rules, validates its current fields.
func NewRecord[T any](model *T, opts ...RecordOption) (*Record[T], error) {
	if model == nil {
		return nil, ErrNilModel
	}

	var cfg recordConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	rules := cfg.rules
	if !cfg.hasRules {
		if v, ok := any(model).(Validatable); ok {
			rules = v.ValidationRules()
		}
	}

	r := &Record[T]{model: model, rules: rules}
	if len(rules) == 0 {
		return r, nil
	}

	fields, err := FieldsOf(model)
	if err != nil {
		return nil, err
	}
	r.validation = &Validation{errors: Validate(fields, rules)}
	return r, nil
}

// Model returns the wrapped model.
func (r *Record[T]) Model() *T {
	return r.model
}

// Rules returns the rules the record was validated against.
func (r *Record[T]) Rules() Rules {
	return r.rules
}

// IsValidated is true when the record has no rules or passed them.
func (r *Record[T]) IsValidated() bool {
	if r.validation == nil {
		return true
	}
	return r.validation.OK()
}

// Errors returns the validation messages per column, nil when valid.
func (r *Record[T]) Errors() map[string][]string {
	if r.validation == nil {
		return nil
	}
	return r.validation.Errors()
}

// Save persists the record through p. An invalid record is not handed to p;
// Save returns a *ValidationError instead. Errors from p are returned as is.
func (r *Record[T]) Save(ctx context.Context, p Persister[T], opts ...SaveOption) error {
	if !r.IsValidated() {
		errs := r.Errors()
		log().Warn("refusing to save invalid record",
			zap.String("model", reflect.TypeOf(r.model).Elem().String()),
			zap.Any("errors", errs))
		return &ValidationError{Errors: errs}
	}

	var o SaveOptions
	for _, opt := range opts {
		opt(&o)
	}
	return p.Persist(ctx, r.model, o)
}
