// Package plain is the line-oriented frontend: it runs one action or search,
// or follows the backend log, and prints to the terminal without a
// full-screen UI.
package plain

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"organizer-console/internal/app"
	"organizer-console/internal/config"
	"organizer-console/internal/dispatch"
	"organizer-console/internal/logging"
	"organizer-console/internal/logpoll"
	"organizer-console/internal/notify"
	"organizer-console/internal/runtime"
	"organizer-console/internal/screen"
	"organizer-console/internal/storagegauge"
)

const (
	exitOK      = 0
	exitFailed  = 1
	exitStartup = 2
)

var (
	colorRed    = color.New(color.FgRed)
	colorGreen  = color.New(color.FgGreen)
	colorYellow = color.New(color.FgYellow)
	colorCyan   = color.New(color.FgCyan)
	colorBold   = color.New(color.Bold)
	colorFaint  = color.New(color.Faint)
)

// Run executes the mode selected by opts and returns the process exit code.
func Run(rootCtx context.Context, buildVersion string, opts config.Options, tuning config.Tuning) int {
	logger := logging.New(opts.Debug)
	defer func() {
		_ = logger.Close()
	}()
	logger.Debug("starting plain console", logging.Field("version", buildVersion))

	r, err := newRunner(os.Stdout, opts, tuning, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitStartup
	}
	return r.run(rootCtx)
}

type runner struct {
	out     io.Writer
	opts    config.Options
	logger  *logging.Logger
	service *runtime.ConsoleService
	app     *app.App

	mu      sync.Mutex
	printed []logpoll.Line
}

func newRunner(out io.Writer, opts config.Options, tuning config.Tuning, logger *logging.Logger) (*runner, error) {
	if logger == nil {
		panic("plain.newRunner: logger must not be nil")
	}
	r := &runner{out: out, opts: opts, logger: logger}
	service, err := runtime.NewService(opts, tuning, logger, app.Hooks{OnChange: r.onChange})
	if err != nil {
		return nil, err
	}
	r.service = service
	r.app = service.App()
	return r, nil
}

func (r *runner) run(ctx context.Context) int {
	if err := r.service.WaitReady(ctx); err != nil {
		fmt.Fprintln(r.out, colorRed.Sprint("❌ "+err.Error()))
		return exitFailed
	}
	switch {
	case strings.TrimSpace(r.opts.Action) != "":
		return r.runAction(ctx, dispatch.Action(strings.TrimSpace(r.opts.Action)))
	case strings.TrimSpace(r.opts.Query) != "":
		return r.runSearch(ctx)
	default:
		return r.follow(ctx)
	}
}

// runAction dispatches one action, then prints the notification and the log
// refreshed by the dispatcher.
func (r *runner) runAction(ctx context.Context, action dispatch.Action) int {
	outcome := r.app.Dispatch(ctx, action)
	if outcome == dispatch.OutcomeUnknownAction {
		fmt.Fprintln(r.out, colorRed.Sprintf("❌ unknown action %q", action))
		return exitFailed
	}
	r.printToast(r.app.Toast.Current())
	if outcome != dispatch.OutcomeRejected {
		r.printLog(r.app.Log.Lines())
	}
	return exitCode(outcome)
}

func (r *runner) runSearch(ctx context.Context) int {
	if err := r.app.Handle(ctx, app.QueryEdited{Text: r.opts.Query}); err != nil {
		r.logger.Error("query rejected", logging.Field("error", err))
		return exitFailed
	}
	outcome := r.app.Search(ctx)
	if outcome == dispatch.OutcomeRejected {
		r.printToast(r.app.Toast.Current())
		return exitFailed
	}
	r.printResults(r.app.Results.State())
	if outcome != dispatch.OutcomeSucceeded {
		r.printToast(r.app.Toast.Current())
	}
	return exitCode(outcome)
}

// follow prints the storage gauge, then tails the backend log until ctx ends.
func (r *runner) follow(ctx context.Context) int {
	if r.app.LoadGauge(ctx) {
		r.printGauge(r.app.Gauge.State())
	}
	if err := r.app.PollLogs(ctx); err != nil && ctx.Err() == nil {
		r.logger.Error("log polling stopped", logging.Field("error", err))
		return exitFailed
	}
	return exitOK
}

func (r *runner) onChange(part screen.Part) {
	if part != screen.PartLog || r.opts.Action != "" {
		return
	}
	r.printNewLines(r.app.Log.Lines())
}

// printNewLines prints the lines past what was already printed. The backend
// keeps a bounded buffer, so a full one slides forward: the printed tail is
// matched against the head of the new buffer. No overlap at all means the
// backend restarted and everything is printed again.
func (r *runner) printNewLines(lines []logpoll.Line) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start := overlap(r.printed, lines)
	if start == 0 && len(r.printed) > 0 && !isPlaceholder(r.printed) {
		fmt.Fprintln(r.out, colorFaint.Sprint("--- log restarted ---"))
	}
	for _, line := range lines[start:] {
		fmt.Fprintln(r.out, formatLine(line))
	}
	r.printed = lines
}

// overlap returns the length of the longest suffix of printed that is also a
// prefix of lines.
func overlap(printed []logpoll.Line, lines []logpoll.Line) int {
	for k := min(len(printed), len(lines)); k > 0; k-- {
		if slices.Equal(printed[len(printed)-k:], lines[:k]) {
			return k
		}
	}
	return 0
}

func isPlaceholder(lines []logpoll.Line) bool {
	return len(lines) == 1 && lines[0].Text == logpoll.Placeholder
}

func (r *runner) printLog(lines []logpoll.Line) {
	fmt.Fprintln(r.out, colorBold.Sprint("Backend log:"))
	for _, line := range lines {
		fmt.Fprintln(r.out, "  "+formatLine(line))
	}
}

func (r *runner) printToast(toast notify.Toast) {
	if toast.Message == "" {
		return
	}
	text := strings.TrimSpace(toast.Icon + " " + toast.Message)
	if toast.Severity == notify.SeverityError {
		fmt.Fprintln(r.out, colorRed.Sprint(text))
		return
	}
	fmt.Fprintln(r.out, colorGreen.Sprint(text))
}

func (r *runner) printResults(state screen.ResultsState) {
	if state.Placeholder != "" {
		if state.PlaceholderError {
			fmt.Fprintln(r.out, colorRed.Sprint(state.Placeholder))
		} else {
			fmt.Fprintln(r.out, colorFaint.Sprint(state.Placeholder))
		}
	} else {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Name", "Path", "Size")
		for _, row := range state.Rows {
			t.Row(row.Name, row.Path, row.Size)
		}
		fmt.Fprintln(r.out, t.Render())
	}
	if state.Status != "" {
		fmt.Fprintln(r.out, colorBold.Sprint(state.Status))
	}
}

func (r *runner) printGauge(state screen.GaugeState) {
	percent := state.Reading.PercentText
	var painted string
	switch state.Reading.Color {
	case storagegauge.ColorAlert:
		painted = colorRed.Sprint(percent)
	case storagegauge.ColorWarning:
		painted = colorYellow.Sprint(percent)
	default:
		painted = colorGreen.Sprint(percent)
	}
	fmt.Fprintf(r.out, "💾 Storage %s used (%s)\n", painted, state.Label)
}

func formatLine(line logpoll.Line) string {
	switch line.Class {
	case logpoll.ClassError:
		return colorRed.Sprint(line.Text)
	case logpoll.ClassWarning:
		return colorYellow.Sprint(line.Text)
	case logpoll.ClassSuccess:
		return colorGreen.Sprint(line.Text)
	case logpoll.ClassInfo:
		return colorCyan.Sprint(line.Text)
	default:
		return line.Text
	}
}

func exitCode(outcome dispatch.Outcome) int {
	if outcome == dispatch.OutcomeSucceeded {
		return exitOK
	}
	return exitFailed
}
