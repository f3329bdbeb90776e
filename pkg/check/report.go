package check

import (
	"log/slog"
	"sync"
)

// LogReporter writes one log record per result: passes at info level,
// failures at error level with both values attached.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a reporter on top of logger.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (l *LogReporter) Report(r Result) {
	if r.Passed {
		l.logger.Info("PASS", "check", r.Description)
		return
	}

	attrs := []any{
		"check", r.Description,
		"actual", r.Actual,
		"expected", r.Expected,
	}
	if r.Err != nil {
		attrs = append(attrs, "error", r.Err)
	}
	l.logger.Error("FAIL", attrs...)
}

// Recorder keeps every result in memory, in evaluation order.
type Recorder struct {
	mu      sync.Mutex
	results []Result
}

func (r *Recorder) Report(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

// Results returns a copy of the recorded results.
func (r *Recorder) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.results...)
}

// Failures returns the recorded results that did not pass.
func (r *Recorder) Failures() []Result {
	var out []Result
	for _, res := range r.Results() {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Tee forwards every result to all reporters.
func Tee(reporters ...Reporter) Reporter {
	return ReporterFunc(func(r Result) {
		for _, rep := range reporters {
			rep.Report(r)
		}
	})
}
