package delegate

import (
	"github.com/rs/zerolog"
)

// Failure describes a target that panicked during Invoke
type Failure struct {
	ID   ID
	Kind Kind
	Err  error
}

// FailureHandler receives every Failure of a pass. It runs on the invoking
// goroutine while the pass is still active, so adding or removing targets
// from it follows the same rules as from a target.
type FailureHandler func(Failure)

// Option configures a Delegate built with New
type Option func(*settings)

type settings struct {
	scope     Scope
	ids       IDSource
	onFailure FailureHandler
	logger    *zerolog.Logger
}

// WithIDScope selects the id counter. ScopeInstance is the default.
func WithIDScope(scope Scope) Option {
	return func(s *settings) {
		s.scope = scope
	}
}

// WithIDSource uses src for ids, overriding WithIDScope. Delegates sharing
// one source never hand out the same id.
func WithIDSource(src IDSource) Option {
	return func(s *settings) {
		s.ids = src
	}
}

// WithFailureHandler replaces the default handler, which logs the failure
func WithFailureHandler(h FailureHandler) Option {
	return func(s *settings) {
		s.onFailure = h
	}
}

// WithLogger sets the logger for failures and skipped invocations
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = &logger
	}
}
