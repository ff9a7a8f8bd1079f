package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffd60a"))
)

// Model defines the application state
type Model struct {
	mainMenu        list.Model
	inventoryView   table.Model
	historyView     table.Model
	recommendations []Recommendation
	stats           InventoryStats
	spinner         spinner.Model
	client          *ApiClient
	loading         bool
	currentView     string
	message         string
	error           string
}

// item represents a list item
type item struct {
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

// Messages returned by API commands
type statusMsg *FridgeStatus
type recommendationsMsg []Recommendation
type historyMsg []HistoryEvent
type actionMsg string
type errMsg string

func initialModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	items := []list.Item{
		item{title: "Inventory", desc: "View everything stored in the fridge"},
		item{title: "Recommendations", desc: "What to eat, what to throw out"},
		item{title: "Take Out", desc: "Eject the item most in need of attention"},
		item{title: "History", desc: "Recent placements and retrievals"},
		item{title: "Exit", desc: "Exit the application"},
	}

	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Smart Fridge Console"

	inventoryTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Item", Width: 24},
			{Title: "Category", Width: 12},
			{Title: "Slot", Width: 8},
			{Title: "Days Left", Width: 10},
			{Title: "State", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	historyTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "When", Width: 20},
			{Title: "Action", Width: 10},
			{Title: "Item", Width: 24},
			{Title: "Slot", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return Model{
		mainMenu:      mainMenu,
		inventoryView: inventoryTable,
		historyView:   historyTable,
		spinner:       s,
		client:        NewApiClient(),
		currentView:   "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if m.currentView == "main" {
				if selected, ok := m.mainMenu.SelectedItem().(item); ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Inventory":
						m.currentView = "inventory"
						m.loading = true
						return m, fetchStatus(m.client)
					case "Recommendations":
						m.currentView = "recommendations"
						m.loading = true
						return m, fetchRecommendations(m.client)
					case "Take Out":
						m.currentView = "action"
						m.loading = true
						return m, pressTakeOut(m.client)
					case "History":
						m.currentView = "history"
						m.loading = true
						return m, fetchHistory(m.client)
					}
				}
			} else if m.currentView == "inventory" {
				// Enter on a row retrieves that item.
				row := m.inventoryView.SelectedRow()
				if len(row) > 0 {
					m.currentView = "action"
					m.loading = true
					return m, retrieveByName(m.client, row[0])
				}
			}
		case "esc":
			if m.currentView != "main" {
				m.currentView = "main"
				m.error = ""
				m.message = ""
			}
		case "r":
			switch m.currentView {
			case "inventory":
				m.loading = true
				return m, fetchStatus(m.client)
			case "recommendations":
				m.loading = true
				return m, fetchRecommendations(m.client)
			case "history":
				m.loading = true
				return m, fetchHistory(m.client)
			}
		}

	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.mainMenu.SetSize(msg.Width-h, msg.Height-v)

	case statusMsg:
		m.loading = false
		m.error = ""
		m.stats = msg.Stats
		rows := make([]table.Row, 0, len(msg.Inventory))
		for _, it := range msg.Inventory {
			rows = append(rows, table.Row{
				it.ItemID,
				it.Category,
				fmt.Sprintf("L%d/S%d", it.Level, it.Section),
				daysLeft(it),
				itemState(it),
			})
		}
		m.inventoryView.SetRows(rows)

	case recommendationsMsg:
		m.loading = false
		m.error = ""
		m.recommendations = msg

	case historyMsg:
		m.loading = false
		m.error = ""
		rows := make([]table.Row, 0, len(msg))
		for _, ev := range msg {
			rows = append(rows, table.Row{
				ev.CreatedAt.Format("2006-01-02 15:04:05"),
				ev.Action,
				ev.ItemName,
				fmt.Sprintf("L%d/S%d", ev.Level, ev.Section),
			})
		}
		m.historyView.SetRows(rows)

	case actionMsg:
		m.loading = false
		m.error = ""
		m.message = string(msg)

	case errMsg:
		m.loading = false
		m.error = string(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "inventory":
		m.inventoryView, cmd = m.inventoryView.Update(msg)
	case "history":
		m.historyView, cmd = m.historyView.Update(msg)
	}
	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	if m.loading {
		return docStyle.Render(fmt.Sprintf("%s Talking to the fridge...", m.spinner.View()))
	}

	var b strings.Builder
	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())

	case "inventory":
		b.WriteString(titleStyle.Render("Fridge Inventory") + "\n\n")
		b.WriteString(fmt.Sprintf("total %d | fresh %d | expiring %d | expired %d | long-term %d\n\n",
			m.stats.TotalItems, m.stats.FreshItems, m.stats.ExpiringSoon,
			m.stats.ExpiredItems, m.stats.LongTermItems))
		b.WriteString(m.inventoryView.View())
		b.WriteString("\n\nenter: take out selected · r: refresh · esc: back")

	case "recommendations":
		b.WriteString(titleStyle.Render("Recommendations") + "\n\n")
		for _, rec := range m.recommendations {
			b.WriteString(sectionStyle.Render(rec.Title) + "\n")
			b.WriteString(rec.Message + "\n")
			for _, it := range rec.Items {
				b.WriteString(fmt.Sprintf("  - %s (%s)\n", it.Name, daysLeft(it)))
			}
			b.WriteString("→ " + rec.Action + "\n\n")
		}
		b.WriteString("r: refresh · esc: back")

	case "history":
		b.WriteString(titleStyle.Render("Recent Activity") + "\n\n")
		b.WriteString(m.historyView.View())
		b.WriteString("\n\nr: refresh · esc: back")

	case "action":
		if m.error != "" {
			b.WriteString(errorStyle.Render("Error") + "\n\n" + m.error)
		} else {
			b.WriteString(successStyle.Render("Done") + "\n\n" + m.message)
		}
		b.WriteString("\n\nesc: back")
	}

	if m.error != "" && m.currentView != "action" {
		b.WriteString("\n\n" + errorStyle.Render(m.error))
	}
	return docStyle.Render(b.String())
}

func daysLeft(it DisplayItem) string {
	if it.ShelfLifeDays < 0 {
		return "∞"
	}
	return strconv.Itoa(it.DaysRemaining)
}

func itemState(it DisplayItem) string {
	switch {
	case it.ShelfLifeDays < 0:
		return "long-term"
	case it.IsExpired:
		return "expired"
	case it.DaysRemaining <= 2:
		return "expiring"
	default:
		return "fresh"
	}
}

// Commands

func fetchStatus(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		status, err := client.GetStatus()
		if err != nil {
			return errMsg(err.Error())
		}
		return statusMsg(status)
	}
}

func fetchRecommendations(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		recs, err := client.GetRecommendations()
		if err != nil {
			return errMsg(err.Error())
		}
		return recommendationsMsg(recs)
	}
}

func fetchHistory(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		events, err := client.GetHistory()
		if err != nil {
			return errMsg(err.Error())
		}
		return historyMsg(events)
	}
}

func pressTakeOut(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		message, err := client.PressTakeOut()
		if err != nil {
			return errMsg(err.Error())
		}
		return actionMsg(message)
	}
}

func retrieveByName(client *ApiClient, itemID string) tea.Cmd {
	return func() tea.Msg {
		message, err := client.RetrieveItem(itemID)
		if err != nil {
			return errMsg(err.Error())
		}
		return actionMsg(message)
	}
}

func main() {
	if _, err := NewApiClient().CheckHealth(); err != nil {
		fmt.Printf("Warning: fridge API is not reachable: %v\n", err)
	}

	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
