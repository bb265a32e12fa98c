package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/mprisync/mprisync/color"
	"github.com/mprisync/mprisync/events"
	"github.com/mprisync/mprisync/internal/ui"
	"github.com/mprisync/mprisync/progress"
	"github.com/mprisync/mprisync/util"
	"github.com/samber/mo"
)

// logLimit is how many events the log keeps.
const logLimit = 10

type logEntry struct {
	event      events.Event
	receivedAt time.Time
}

type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	progressC progressbar.Model
	helpC     help.Model

	ctx    context.Context
	cancel context.CancelFunc

	snapshot      mo.Option[progress.Snapshot]
	log           []logEntry
	eventsEnded   bool
	progressEnded bool
	lastError     error

	width, height int
	notifier      *ui.Model

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y
	b.progressC.Width = util.Clamp(b.width-20, 10, 80)
	b.helpC.Width = b.width
}

func (b *statefulBubble) record(event events.Event) {
	b.log = append(b.log, logEntry{event: event, receivedAt: time.Now()})
	if len(b.log) > logLimit {
		b.log = b.log[len(b.log)-logLimit:]
	}
}

// stop cancels pending reads and closes both streams. Safe to call more than once.
func (b *statefulBubble) stop() {
	if b.ctx.Err() != nil {
		return
	}
	b.cancel()
	b.options.Events.Close()
	b.options.Progress.Close()
}

func newBubble(options *Options) *statefulBubble {
	ctx, cancel := context.WithCancel(context.Background())

	bubble := statefulBubble{
		keymap:   newStatefulKeymap(),
		ctx:      ctx,
		cancel:   cancel,
		snapshot: options.Initial,
		notifier: &ui.Model{},
		options:  options,
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(color.Accent)

	bubble.progressC = progressbar.New(
		progressbar.WithDefaultGradient(),
		progressbar.WithoutPercentage(),
	)

	if options.Initial.IsPresent() {
		bubble.setState(watchingState)
	} else {
		bubble.setState(waitingState)
	}

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	} else {
		bubble.resize(80, 24)
	}

	return &bubble
}
