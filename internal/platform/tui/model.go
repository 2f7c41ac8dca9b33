package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-deal/internal/core"
	"github.com/vovakirdan/tui-deal/internal/engine"
	"github.com/vovakirdan/tui-deal/internal/games/deal"
	"github.com/vovakirdan/tui-deal/internal/registry"
	"github.com/vovakirdan/tui-deal/internal/storage"
)

// Publisher receives a game snapshot after every step that changed something.
type Publisher interface {
	Publish(session, gameID string, snap engine.Snapshot)
}

// snapshotter is implemented by games that expose their engine state.
type snapshotter interface {
	Snapshot() engine.Snapshot
}

// resizer is implemented by games that can follow a terminal resize without
// starting over.
type resizer interface {
	Resize(w, h int)
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPublisher publishes snapshots for the given session.
func WithPublisher(p Publisher, session string) ModelOption {
	return func(m *Model) {
		m.publisher = p
		m.session = session
	}
}

// WithLogger sets the logger used for game events.
func WithLogger(logger *log.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logger
	}
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	publisher  Publisher
	session    string
	logger     *log.Logger
	published  bool
	quitting   bool
	backToMenu bool
	saved      bool // Whether the result has been saved for the current game
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back only leaves a finished or paused game
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
		m.gameState = m.game.State()
		return m, nil
	}

	// Games without Resize start over at the new size
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick applies the buffered input to the game.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.saved = false
		m.inputFrame.Clear()
		m.publish()
		m.logger.Debug("new game", "session", m.session, "game", m.game.ID())
		return m, tickCmd(m.config.TickRate)
	}

	changed := !m.inputFrame.Empty() || !m.published
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, e := range result.Events {
		m.logEvent(e)
	}
	if changed || len(result.Events) > 0 {
		m.publish()
	}

	if m.gameState.GameOver && !m.saved {
		m.saveResult()
		m.saved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// publish sends the current snapshot to the publisher, if any.
func (m *Model) publish() {
	m.published = true
	if m.publisher == nil {
		return
	}
	if s, ok := m.game.(snapshotter); ok {
		m.publisher.Publish(m.session, m.game.ID(), s.Snapshot())
	}
}

func (m *Model) logEvent(e core.Event) {
	fields := []any{"session", m.session, "game", m.game.ID(), "kind", e.Kind}
	if e.Case != engine.NoCase {
		fields = append(fields, "case", e.Case+1)
	}
	if e.Amount != 0 {
		fields = append(fields, "amount", deal.Money(e.Amount))
	}
	if e.Note != "" {
		fields = append(fields, "note", e.Note)
	}
	m.logger.Debug("game event", fields...)
}

// saveResult stores the finished game. Games that cannot report a result
// are skipped.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}
	reporter, ok := m.game.(deal.Reporter)
	if !ok {
		return
	}
	res, ok := reporter.Result()
	if !ok {
		return
	}

	id, err := m.store.SaveResult(storageResult(res))
	if err != nil {
		m.logger.Warn("could not save result", "session", m.session, "error", err)
		return
	}
	m.logger.Info("game finished",
		"session", m.session,
		"game", res.GameID,
		"outcome", res.Outcome,
		"winnings", deal.Money(res.Winnings),
		"result", id,
	)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".deal", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// GameState returns the state reported by the last step.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game. It returns true when
// the player left with Back rather than quitting.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
