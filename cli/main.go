package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#b8860b")).
			Padding(0, 1)

	customerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0a84ff")).
			Bold(true)

	shopStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#30d158")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff453a"))

	sidebarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8e8e93"))
)

// chatLine is one rendered line of the transcript
type chatLine struct {
	speaker string
	text    string
}

// Model defines the application state
type Model struct {
	client    *ApiClient
	sessionID string
	input     textinput.Model
	spinner   spinner.Model
	history   []chatLine
	order     *OrderState
	loading   bool
	err       string
}

// replyMsg carries the server's answer back into the update loop
type replyMsg struct {
	turn *TurnResponse
	err  error
}

func newModel(client *ApiClient, sessionID string) Model {
	ti := textinput.New()
	ti.Placeholder = "What would you like to order?"
	ti.Focus()
	ti.CharLimit = 280
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:    client,
		sessionID: sessionID,
		input:     ti,
		spinner:   sp,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.loading {
				return m, nil
			}
			m.history = append(m.history, chatLine{speaker: "you", text: text})
			m.input.Reset()
			m.loading = true
			m.err = ""
			return m, tea.Batch(m.spinner.Tick, m.send(text))
		}

	case replyMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.history = append(m.history, chatLine{speaker: "shop", text: msg.turn.Reply})
		m.order = &msg.turn.Order
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send posts one turn to the server off the update loop
func (m Model) send(text string) tea.Cmd {
	return func() tea.Msg {
		turn, err := m.client.SendMessage(m.sessionID, text)
		return replyMsg{turn: turn, err: err}
	}
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Bagel Bros"))
	b.WriteString("\n\n")

	for _, line := range m.history {
		if line.speaker == "you" {
			b.WriteString(customerStyle.Render("you  ") + line.text + "\n")
		} else {
			b.WriteString(shopStyle.Render("shop ") + line.text + "\n")
		}
	}

	b.WriteString("\n")
	if m.loading {
		b.WriteString(m.spinner.View() + " thinking...\n")
	} else {
		b.WriteString(m.input.View() + "\n")
	}

	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err) + "\n")
	}
	if m.order != nil && len(m.order.Items) > 0 {
		b.WriteString("\n" + sidebarStyle.Render(renderOrder(m.order)) + "\n")
	}
	b.WriteString(sidebarStyle.Render("\nenter to send, esc to quit"))

	return docStyle.Render(b.String())
}

// renderOrder summarizes the cart under the chat
func renderOrder(order *OrderState) string {
	var lines []string
	for _, it := range order.Items {
		if it.Status == "skipped" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d x %s", it.Quantity, it.Name))
	}
	return "order so far: " + strings.Join(lines, ", ")
}

func main() {
	client := NewApiClient()
	if err := client.CheckHealth(); err != nil {
		fmt.Printf("Cannot reach %s: %v\n", client.BaseURL, err)
		os.Exit(1)
	}

	sessionID, err := client.CreateSession()
	if err != nil {
		fmt.Printf("Failed to start a session: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(client, sessionID))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
