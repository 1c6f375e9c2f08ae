package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yolodolo42/emberwallet/internal/chain"
	"gopkg.in/yaml.v3"
)

// Step represents the current step in the wizard
type Step int

const (
	StepNetwork Step = iota
	StepCustomURL
	StepComplete
)

const customNetworkID = "custom"

// Result contains the outcome of the setup wizard
type Result struct {
	Network   string
	Cancelled bool
}

type networkItem struct {
	id    string
	label string
	desc  string
}

// Model is the wizard Bubbletea model
type Model struct {
	step    Step
	dataDir string

	networks []networkItem
	cursor   int

	urlInput textinput.Model
	urlError string

	result *Result
	err    error
}

// NewWizard builds the wizard model over the built-in networks.
func NewWizard(dataDir string) Model {
	defaults := chain.DefaultNetworks()
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]networkItem, 0, len(names)+1)
	for _, name := range names {
		cfg := defaults[name]
		desc := cfg.APIURLs[0]
		if cfg.IsTestnet {
			desc += " (testnet)"
		}
		items = append(items, networkItem{id: name, label: cfg.Name, desc: desc})
	}
	items = append(items, networkItem{
		id:    customNetworkID,
		label: "Custom node",
		desc:  "point at your own Ember node",
	})

	ti := textinput.New()
	ti.Placeholder = "http://127.0.0.1:8080"
	ti.CharLimit = 200
	ti.Width = 50

	return Model{
		step:     StepNetwork,
		dataDir:  dataDir,
		networks: items,
		urlInput: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.result = &Result{Cancelled: true}
		return m, tea.Quit
	}

	switch m.step {
	case StepNetwork:
		return m.updateNetwork(keyMsg)
	case StepCustomURL:
		return m.updateCustomURL(keyMsg)
	case StepComplete:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateNetwork(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.networks)-1 {
			m.cursor++
		}
	case "enter":
		selected := m.networks[m.cursor]
		if selected.id == customNetworkID {
			m.step = StepCustomURL
			return m, m.urlInput.Focus()
		}
		if err := writeConfig(m.dataDir, selected.id, ""); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.result = &Result{Network: selected.id}
		m.step = StepComplete
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateCustomURL(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		raw := strings.TrimSpace(m.urlInput.Value())
		if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
			m.urlError = "URL must start with http:// or https://"
			return m, nil
		}
		if err := writeConfig(m.dataDir, customNetworkID, raw); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.result = &Result{Network: customNetworkID}
		m.step = StepComplete
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	switch m.step {
	case StepNetwork:
		var b strings.Builder
		b.WriteString(TitleStyle.Render("emberwallet setup") + "\n\n")
		b.WriteString("Which network should this wallet talk to?\n\n")
		for i, item := range m.networks {
			cursor := "  "
			label := NormalStyle.Render(fmt.Sprintf("%-16s", item.label))
			if i == m.cursor {
				cursor = CursorStyle.Render("▸ ")
				label = SelectedStyle.Render(fmt.Sprintf("%-16s", item.label))
			}
			b.WriteString(cursor + label + DimStyle.Render(item.desc) + "\n")
		}
		b.WriteString("\n" + HelpStyle.Render("↑/↓ navigate · enter select · esc cancel"))
		return b.String()

	case StepCustomURL:
		var b strings.Builder
		b.WriteString(TitleStyle.Render("Custom node") + "\n\n")
		b.WriteString("API base URL of your Ember node:\n\n")
		b.WriteString(m.urlInput.View() + "\n")
		if m.urlError != "" {
			b.WriteString("\n" + ErrorStyle.Render(m.urlError) + "\n")
		}
		b.WriteString("\n" + HelpStyle.Render("enter confirm · esc cancel"))
		return b.String()

	case StepComplete:
		return SuccessStyle.Render("✓ configuration written") + "\n"
	}
	return ""
}

// RunWizard runs the interactive setup and writes config.yaml on success.
func RunWizard() (*Result, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	p := tea.NewProgram(NewWizard(dataDir))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(Model)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// PrintEnvInstructions explains non-interactive configuration.
func PrintEnvInstructions() {
	fmt.Println("emberwallet is not configured yet.")
	fmt.Println("")
	fmt.Println("Either run emberwallet in an interactive terminal for guided setup,")
	fmt.Println("or create ~/.emberwallet/config.yaml by hand:")
	fmt.Println("")
	fmt.Println("  network: mainnet")
	fmt.Println("")
	fmt.Println("Built-in networks: mainnet, testnet, localnet.")
}

// fileConfig is the on-disk config layout.
type fileConfig struct {
	Network  string                          `yaml:"network"`
	Networks map[string]*chain.NetworkConfig `yaml:"networks,omitempty"`
}

func writeConfig(dataDir, network, customURL string) error {
	cfg := fileConfig{Network: network}
	if network == customNetworkID {
		cfg.Networks = map[string]*chain.NetworkConfig{
			customNetworkID: {
				Name:    "Custom",
				APIURLs: []string{customURL},
				Symbol:  "EMB",
			},
		}
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	path := filepath.Join(dataDir, "config.yaml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
