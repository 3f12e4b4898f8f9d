package tui

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/common"

	"chainvote/internal/crypto"
	"chainvote/internal/domain"
)

// Title is the heading shown at the top of the screen.
const Title = "Blockchain Voting System"

type phase int

const (
	phaseUnlock phase = iota
	phaseConnecting
	phaseReady
)

// Options configures the screen.
type Options struct {
	Question string
	Footer   string
	// Unlock is called with the typed passphrase. When nil the passphrase
	// prompt is skipped.
	Unlock func(passphrase string)
	// Timeout bounds each connect, refresh or vote round trip. Zero means
	// no limit.
	Timeout time.Duration
}

type (
	connectedMsg struct {
		conn domain.Connection
		err  error
	}
	tallyMsg struct {
		tally domain.Tally
		err   error
	}
	votedMsg struct {
		receipt domain.Receipt
		err     error
	}
)

// Model is the bubbletea model of the voting screen.
type Model struct {
	voting domain.VotingService
	opts   Options
	styles Styles
	keys   keyMap

	help      help.Model
	spinner   spinner.Model
	passInput textinput.Model

	phase   phase
	focus   domain.Choice
	busy    bool
	tally   domain.Tally
	account common.Address
	status  string
	err     error
	width   int
}

// New returns the screen model.
func New(voting domain.VotingService, opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "wallet passphrase"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Prompt = "🔑 "

	m := Model{
		voting:    voting,
		opts:      opts,
		styles:    DefaultStyles(),
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		passInput: ti,
		phase:     phaseConnecting,
		focus:     domain.ChoiceYes,
		tally:     domain.ZeroTally(),
	}
	if opts.Unlock != nil {
		m.phase = phaseUnlock
		m.passInput.Focus()
	}
	return m
}

// Init starts the connection, or the passphrase prompt when one is needed.
func (m Model) Init() tea.Cmd {
	if m.phase == phaseUnlock {
		return textinput.Blink
	}
	return tea.Batch(m.spinner.Tick, m.connect())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.phase == phaseUnlock {
			return m.updateUnlock(msg)
		}
		return m.updateKeys(msg)

	case connectedMsg:
		if m.opts.Unlock != nil && errors.Is(msg.err, domain.ErrWrongPassphrase) {
			m.phase = phaseUnlock
			m.setResult(nil, "Wrong passphrase, try again.")
			return m, m.passInput.Focus()
		}
		m.phase = phaseReady
		m.account = msg.conn.Account
		if msg.conn.Tally.Yes != nil || msg.conn.Tally.No != nil {
			m.tally = msg.conn.Tally
		}
		m.setResult(msg.err, "")
		return m, nil

	case tallyMsg:
		if msg.err == nil {
			m.tally = msg.tally
		}
		m.setResult(msg.err, "")
		return m, nil

	case votedMsg:
		m.busy = false
		if msg.err != nil {
			m.setResult(msg.err, "")
			return m, nil
		}
		m.tally = msg.receipt.After
		m.setResult(nil, fmt.Sprintf("Voted %s in block %d (tx %s)",
			msg.receipt.Choice, msg.receipt.BlockNumber, shortHash(msg.receipt.TxHash)))
		return m, nil

	case spinner.TickMsg:
		if !m.busy && m.phase != phaseConnecting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.phase == phaseUnlock {
		var cmd tea.Cmd
		m.passInput, cmd = m.passInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateUnlock(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		pass := m.passInput.Value()
		if pass == "" {
			m.setResult(nil, "A passphrase is required to unlock the wallet.")
			return m, nil
		}
		m.opts.Unlock(pass)
		m.passInput.Reset()
		m.passInput.Blur()
		m.phase = phaseConnecting
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.connect())
	}
	var cmd tea.Cmd
	m.passInput, cmd = m.passInput.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.focus = domain.ChoiceYes
	case key.Matches(msg, m.keys.Right):
		m.focus = domain.ChoiceNo
	case key.Matches(msg, m.keys.Toggle):
		m.focus = other(m.focus)
	case key.Matches(msg, m.keys.Vote):
		return m.vote(m.focus)
	case key.Matches(msg, m.keys.Yes):
		m.focus = domain.ChoiceYes
		return m.vote(domain.ChoiceYes)
	case key.Matches(msg, m.keys.No):
		m.focus = domain.ChoiceNo
		return m.vote(domain.ChoiceNo)
	case key.Matches(msg, m.keys.Refresh):
		if m.phase == phaseReady && !m.busy {
			return m, m.refresh()
		}
	}
	return m, nil
}

// vote starts a vote once connected, unless one is already pending.
func (m Model) vote(choice domain.Choice) (tea.Model, tea.Cmd) {
	if m.busy || m.phase != phaseReady {
		return m, nil
	}
	m.busy = true
	m.err = nil
	m.status = fmt.Sprintf("Waiting for your %q vote to be confirmed…", choice)
	return m, tea.Batch(m.spinner.Tick, m.cast(choice))
}

func other(c domain.Choice) domain.Choice {
	if c == domain.ChoiceYes {
		return domain.ChoiceNo
	}
	return domain.ChoiceYes
}

func (m *Model) setResult(err error, status string) {
	m.err = err
	m.status = status
}

func (m Model) opContext() (context.Context, context.CancelFunc) {
	if m.opts.Timeout > 0 {
		return context.WithTimeout(context.Background(), m.opts.Timeout)
	}
	return context.WithCancel(context.Background())
}

func (m Model) connect() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		conn, err := m.voting.Connect(ctx)
		return connectedMsg{conn: conn, err: err}
	}
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		t, err := m.voting.Tally(ctx)
		return tallyMsg{tally: t, err: err}
	}
}

func (m Model) cast(choice domain.Choice) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		r, err := m.voting.Cast(ctx, choice)
		return votedMsg{receipt: r, err: err}
	}
}

// View renders the screen.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(Title))
	sb.WriteString("\n")
	if m.opts.Question != "" {
		sb.WriteString(m.styles.Question.Render(m.opts.Question))
		sb.WriteString("\n")
	}

	if m.phase == phaseUnlock {
		sb.WriteString("Unlock your wallet to vote\n\n")
		sb.WriteString(m.passInput.View())
		sb.WriteString("\n")
		if m.status != "" {
			sb.WriteString(m.styles.Status.Render(m.status))
			sb.WriteString("\n")
		}
		sb.WriteString(m.styles.Status.Render("enter unlock • esc quit"))
		return m.place(sb.String())
	}

	sb.WriteString(m.styles.Count.Render(fmt.Sprintf("Yes votes: %s", formatCount(m.tally.Yes))))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Count.Render(fmt.Sprintf("No votes: %s", formatCount(m.tally.No))))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Total.Render(fmt.Sprintf("Total votes: %s", formatCount(m.tally.Total()))))
	sb.WriteString("\n\n")

	sb.WriteString(m.buttons())
	sb.WriteString("\n\n")

	switch {
	case m.phase == phaseConnecting:
		sb.WriteString(m.spinner.View() + " Connecting to wallet and contract…")
	case m.busy:
		sb.WriteString(m.spinner.View() + " " + m.status)
	case m.err != nil:
		sb.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
	case m.status != "":
		sb.WriteString(m.styles.Status.Render(m.status))
	case m.account != (common.Address{}):
		sb.WriteString(m.styles.Status.Render("Connected as " + crypto.Fingerprint(m.account)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.help.View(m.keys))

	if m.opts.Footer != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Footer.Render(m.opts.Footer))
	}
	return m.place(sb.String())
}

func (m Model) buttons() string {
	yes, no := m.styles.YesButton, m.styles.NoButton
	if m.focus == domain.ChoiceYes {
		yes = m.styles.YesFocused
	} else {
		no = m.styles.NoFocused
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		yes.Render("Vote Yes"),
		no.Render("Vote No"),
	)
}

func (m Model) place(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(s))
}

func formatCount(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return humanize.BigComma(n)
}

func shortHash(h common.Hash) string {
	s := h.Hex()
	return s[:10] + "…"
}

// Run shows the screen until the user quits.
func Run(voting domain.VotingService, opts Options) error {
	_, err := tea.NewProgram(New(voting, opts), tea.WithAltScreen()).Run()
	return err
}
