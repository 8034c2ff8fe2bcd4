package dialog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// fieldEditPrefix starts a direct field edit line: ".name new value".
const fieldEditPrefix = "."

// maxTranscript bounds the console history kept on screen.
const maxTranscript = 200

// quitCommands close the console dialog.
var quitCommands = []string{"quit", "exit", ":q"}

// NoticeLog is a Messenger that queues message boxes for the console to
// show under the line that caused them.
type NoticeLog struct {
	mu      sync.Mutex
	pending []string
}

// MessageBox implements Messenger.
func (l *NoticeLog) MessageBox(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(l.pending, msg)
}

func (l *NoticeLog) drain() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.pending
	l.pending = nil
	return out
}

// Console hosts a Command on a terminal. Each submitted line is one dialog
// round: the line is applied to the open dialog's inputs, then previewed
// and executed. The dialog reopens for as long as OnDestroy asks for it.
type Console struct {
	In      io.Reader
	Out     io.Writer
	Command Command
	Theme   Theme
	Prompt  string
	Notices *NoticeLog
}

// NewConsole creates a console host with the default theme. Commands that
// should report through the console use Notices as their Messenger.
func NewConsole(in io.Reader, out io.Writer, cmd Command) *Console {
	return &Console{
		In:      in,
		Out:     out,
		Command: cmd,
		Theme:   DefaultTheme(),
		Prompt:  "> ",
		Notices: &NoticeLog{},
	}
}

// inputClosedMsg is sent when a non-terminal input reaches EOF.
type inputClosedMsg struct{}

// Run drives the dialog until input ends, a quit command is entered, or the
// dialog declines to reopen.
func (c *Console) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		c.Command.OnDestroy(ctx, ReasonAborted)
		return err
	}

	m, err := newConsoleModel(ctx, c)
	if err != nil {
		return err
	}

	var p *tea.Program
	input := c.In
	if !isTerminal(c.In) {
		input = &eofReader{r: c.In, onEOF: func() { p.Send(inputClosedMsg{}) }}
	}
	p = tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(input),
		tea.WithOutput(c.Out),
		tea.WithoutSignalHandler(),
	)

	final, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		c.Command.OnDestroy(ctx, ReasonAborted)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	if err != nil {
		return err
	}
	if fm, ok := final.(consoleModel); ok {
		return fm.err
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(interface{ Fd() uintptr })
	return ok && isatty.IsTerminal(f.Fd())
}

// eofReader reports the end of piped input once. Bytes read together with
// io.EOF are returned first, since the program drops data that arrives with
// an error.
type eofReader struct {
	r     io.Reader
	once  sync.Once
	onEOF func()
	eof   bool
}

func (e *eofReader) Read(b []byte) (int, error) {
	if e.eof {
		e.once.Do(e.onEOF)
		return 0, io.EOF
	}
	n, err := e.r.Read(b)
	if errors.Is(err, io.EOF) {
		e.eof = true
		if n > 0 {
			return n, nil
		}
		e.once.Do(e.onEOF)
	}
	return n, err
}

type consoleModel struct {
	ctx     context.Context
	command Command
	theme   Theme
	notices *NoticeLog

	input      textinput.Model
	inputs     *Inputs
	transcript []string
	done       bool
	err        error
}

func newConsoleModel(ctx context.Context, c *Console) (consoleModel, error) {
	ti := textinput.New()
	ti.Prompt = c.Prompt
	ti.Placeholder = "w = 10 mm"
	ti.Focus()

	notices := c.Notices
	if notices == nil {
		notices = &NoticeLog{}
	}

	m := consoleModel{
		ctx:     ctx,
		command: c.Command,
		theme:   c.Theme,
		notices: notices,
		input:   ti,
	}
	if err := m.open(); err != nil {
		return m, err
	}
	return m, nil
}

// open creates a fresh dialog.
func (m *consoleModel) open() error {
	in := NewInputs()
	if err := m.command.OnCreate(m.ctx, in); err != nil {
		return fmt.Errorf("create dialog: %w", err)
	}
	m.inputs = in
	return nil
}

func (m consoleModel) Init() tea.Cmd { return nil }

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	switch msg := msg.(type) {
	case inputClosedMsg:
		return m.close(ReasonCancelled)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
			return m.close(ReasonCancelled)
		case tea.KeyEnter, tea.KeyCtrlJ:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m consoleModel) close(reason TerminationReason) (tea.Model, tea.Cmd) {
	m.command.OnDestroy(m.ctx, reason)
	m.done = true
	return m, tea.Quit
}

// submit runs one dialog round for the entered line.
func (m consoleModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()

	if isQuit(line) {
		return m.close(ReasonCancelled)
	}
	if line != "" {
		m.record(m.theme.Subtitle.Render(m.input.Prompt + line))
	}

	if err := applyLine(m.inputs, line); err != nil {
		m.record(m.theme.Invalid.Render(err.Error()))
		return m.reopen()
	}

	switch {
	case !m.command.OnPreview(m.ctx, m.inputs):
		m.recordInvalid()
	default:
		m.command.OnExecute(m.ctx, m.inputs)
		m.recordNotices()
		if !m.command.OnDestroy(m.ctx, ReasonCompleted) {
			m.done = true
			return m, tea.Quit
		}
	}
	m.recordNotices()
	return m.reopen()
}

func (m consoleModel) reopen() (tea.Model, tea.Cmd) {
	if err := m.open(); err != nil {
		m.err = err
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *consoleModel) record(line string) {
	m.transcript = append(m.transcript, line)
	if over := len(m.transcript) - maxTranscript; over > 0 {
		m.transcript = m.transcript[over:]
	}
}

func (m *consoleModel) recordNotices() {
	for _, msg := range m.notices.drain() {
		m.record(m.theme.Message.Render(msg))
	}
}

func (m *consoleModel) recordInvalid() {
	for _, g := range m.inputs.Groups() {
		for _, f := range g.Children {
			if f.ValueError {
				m.record(m.theme.Invalid.Render(fmt.Sprintf("✗ invalid %s: %s", f.Label, f.Value)))
			}
		}
	}
}

func (m consoleModel) View() string {
	var b strings.Builder
	for _, line := range m.transcript {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.inputs != nil {
		b.WriteString(renderInputs(m.theme, m.inputs))
		b.WriteString("\n")
	}
	if !m.done {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	return b.String()
}

// applyLine writes one line of user input into the dialog fields.
func applyLine(in *Inputs, line string) error {
	if !strings.HasPrefix(line, fieldEditPrefix) {
		if f := in.Group(CommandGroupID).Field(CommandFieldID); f != nil {
			f.Value = line
		}
		return nil
	}

	name, value, _ := strings.Cut(strings.TrimPrefix(line, fieldEditPrefix), " ")
	f := in.Group(ParameterGroupID).Field(name)
	if f == nil {
		return fmt.Errorf("no parameter field %q", name)
	}
	f.Value = strings.TrimSpace(value)
	return nil
}

func isQuit(line string) bool {
	for _, q := range quitCommands {
		if line == q {
			return true
		}
	}
	return false
}

// renderInputs draws the dialog fields as a card.
func renderInputs(t Theme, in *Inputs) string {
	var b strings.Builder
	for i, g := range in.Groups() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.Title.Render(g.Label))
		b.WriteString("\n")

		width := 0
		for _, f := range g.Children {
			width = max(width, len(f.Label))
		}
		for _, f := range g.Children {
			fmt.Fprintf(&b, "  %-*s  %s", width, f.Label, f.Value)
			if f.Tooltip != "" && g.ID == ParameterGroupID {
				b.WriteString("  ")
				b.WriteString(t.Subtitle.Render(firstLine(f.Tooltip)))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString(t.Help.Render(`enter a command, ".name value" to edit a field, or "quit"`))

	return t.Card.Render(b.String())
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
