// Package tui implements the interactive deposit ledger: a scrollable list
// with inline editing of amount and note, backed by the deposit service's
// edit sessions.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/kunalgarg/bahi/internal/cli"
	"github.com/kunalgarg/bahi/internal/model"
	"github.com/kunalgarg/bahi/internal/service"
)

// Mode is the ledger's interaction mode.
type Mode int

// Ledger modes.
const (
	ModeList Mode = iota
	ModeEdit
)

// Messages.
type (
	depositsLoadedMsg struct {
		err      error
		deposits []model.Deposit
	}
	commitDoneMsg struct{ err error }
	deleteDoneMsg struct {
		err error
		id  int64
	}
)

// Model is the bubbletea model for the deposit ledger.
type Model struct {
	ctx         context.Context
	svc         *service.DepositService
	draft       *model.DepositDraft
	status      string
	deposits    []model.Deposit
	amountInput textinput.Model
	noteInput   textinput.Model
	keys        KeyMap
	clientID    *int64
	cursor      int
	mode        Mode
	quitting    bool
}

// NewModel creates the ledger model. A non-nil clientID narrows the list to
// one client's deposits.
func NewModel(ctx context.Context, svc *service.DepositService, clientID *int64) Model {
	amount := textinput.New()
	amount.Placeholder = "amount"
	amount.CharLimit = 12
	amount.Width = 12

	note := textinput.New()
	note.Placeholder = "note"
	note.CharLimit = 80
	note.Width = 32

	return Model{
		ctx:         ctx,
		svc:         svc,
		clientID:    clientID,
		keys:        DefaultKeyMap(),
		amountInput: amount,
		noteInput:   note,
	}
}

// Init loads the ledger.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		deposits, err := m.svc.List(m.ctx, m.clientID)
		return depositsLoadedMsg{deposits: deposits, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case depositsLoadedMsg:
		if msg.err != nil {
			m.status = cli.FormatError(msg.err.Error())
			return m, nil
		}
		m.deposits = msg.deposits
		if m.cursor >= len(m.deposits) {
			m.cursor = max(0, len(m.deposits)-1)
		}
		return m, nil

	case commitDoneMsg:
		if msg.err != nil {
			// The session stays open; the inputs keep the rejected values.
			m.status = cli.FormatError(msg.err.Error())
			return m, nil
		}
		m.mode = ModeList
		m.draft = nil
		m.status = cli.FormatSuccess("deposit updated")
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.status = cli.FormatError(msg.err.Error())
			return m, nil
		}
		m.status = cli.FormatSuccess("deposit deleted")
		return m, m.load()

	case tea.KeyMsg:
		if m.mode == ModeEdit {
			return m.updateEdit(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.deposits)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()
	case key.Matches(msg, m.keys.Edit):
		if len(m.deposits) == 0 {
			return m, nil
		}
		m.draft = m.svc.BeginEdit(m.deposits[m.cursor])
		if m.draft.Amount != nil {
			m.amountInput.SetValue(m.draft.Amount.String())
		} else {
			m.amountInput.SetValue("")
		}
		m.noteInput.SetValue(m.draft.Note)
		m.amountInput.Focus()
		m.noteInput.Blur()
		m.mode = ModeEdit
		m.status = ""
	case key.Matches(msg, m.keys.Delete):
		if len(m.deposits) == 0 {
			return m, nil
		}
		id := m.deposits[m.cursor].ID
		return m, func() tea.Msg {
			return deleteDoneMsg{id: id, err: m.svc.Delete(m.ctx, id)}
		}
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if err := m.svc.DiscardEdit(m.deposits[m.cursor].ID); err != nil {
			m.status = cli.FormatError(err.Error())
		}
		m.mode = ModeList
		m.draft = nil
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if m.amountInput.Focused() {
			m.amountInput.Blur()
			m.noteInput.Focus()
		} else {
			m.noteInput.Blur()
			m.amountInput.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if raw := strings.TrimSpace(m.amountInput.Value()); raw == "" {
			m.draft.Amount = nil
		} else {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				m.status = cli.FormatError("amount must be a number")
				return m, nil
			}
			m.draft.Amount = &amount
		}
		m.draft.Note = strings.TrimSpace(m.noteInput.Value())
		dep := &m.deposits[m.cursor]
		return m, func() tea.Msg {
			return commitDoneMsg{err: m.svc.CommitEdit(m.ctx, dep)}
		}
	}

	var cmd tea.Cmd
	if m.amountInput.Focused() {
		m.amountInput, cmd = m.amountInput.Update(msg)
	} else {
		m.noteInput, cmd = m.noteInput.Update(msg)
	}
	return m, cmd
}

// View renders the ledger.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Deposits"))
	b.WriteString("\n\n")

	if len(m.deposits) == 0 {
		b.WriteString(cli.SubtleStyle.Render("no deposits"))
		b.WriteString("\n")
	}

	for i, dep := range m.deposits {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}

		if m.mode == ModeEdit && i == m.cursor {
			b.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
				marker, dep.ClientName, m.amountInput.View(), m.noteInput.View()))
			continue
		}

		line := fmt.Sprintf("%s%-20s %-22s %10s  %s",
			marker,
			dep.ClientName,
			m.svc.DisplayDate(dep),
			cli.FormatAmount(dep.Amount),
			dep.Note,
		)
		if i == m.cursor {
			line = cli.AmountStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}

	b.WriteString("\n")
	if m.mode == ModeEdit {
		b.WriteString(cli.SubtleStyle.Render("tab next field · enter save · esc cancel"))
	} else {
		b.WriteString(cli.SubtleStyle.Render("j/k move · e edit · d delete · r refresh · q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

// Run starts the ledger in the terminal and blocks until the user quits.
func Run(ctx context.Context, svc *service.DepositService, clientID *int64) error {
	p := tea.NewProgram(NewModel(ctx, svc, clientID))
	_, err := p.Run()
	return err
}
