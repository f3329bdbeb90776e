package check

import (
	"log/slog"

	"github.com/aretw0/cardmenu/internal/logging"
	"github.com/aretw0/cardmenu/pkg/equal"
)

// Check evaluates one observation and reports whether it passed.
type Check func() bool

// Result is the record emitted for every evaluated check.
type Result struct {
	Description string
	Passed      bool
	Actual      any
	Expected    any
	Err         error // Set when the comparison itself failed
}

// Reporter receives the result of every evaluated check.
type Reporter interface {
	Report(Result)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Result)

func (f ReporterFunc) Report(r Result) { f(r) }

// Harness builds checks that report to a shared Reporter.
type Harness struct {
	reporter Reporter
}

// Option configures a Harness.
type Option func(*Harness)

// WithReporter sets where results are sent.
func WithReporter(r Reporter) Option {
	return func(h *Harness) {
		h.reporter = r
	}
}

// WithLogger reports results through a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.reporter = NewLogReporter(logger)
	}
}

// New creates a Harness. Without options results are discarded.
func New(opts ...Option) *Harness {
	h := &Harness{
		reporter: NewLogReporter(logging.NewNop()),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AssertIs builds a check that passes when actual() is identical to expected.
// The thunk is evaluated once per run of the check.
func (h *Harness) AssertIs(description string, actual func() any, expected any) Check {
	return func() bool {
		got := actual()
		return h.emit(Result{
			Description: description,
			Passed:      equal.Identical(got, expected),
			Actual:      got,
			Expected:    expected,
		})
	}
}

// AssertEquals builds a check that passes when actual() is structurally equal
// to expected. A comparison error fails the check and is carried in the Result.
func (h *Harness) AssertEquals(description string, actual func() any, expected any) Check {
	return func() bool {
		got := actual()
		ok, err := equal.Compare(got, expected)
		return h.emit(Result{
			Description: description,
			Passed:      ok && err == nil,
			Actual:      got,
			Expected:    expected,
			Err:         err,
		})
	}
}

func (h *Harness) emit(r Result) bool {
	h.reporter.Report(r)
	return r.Passed
}

// MakeSuite composes checks into one. Every check runs, in order, whatever the
// outcome of the previous ones; the suite passes only if all of them passed.
func MakeSuite(checks ...Check) Check {
	return func() bool {
		passed := true
		for _, c := range checks {
			if !c() {
				passed = false
			}
		}
		return passed
	}
}
