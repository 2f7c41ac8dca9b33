package core

// RuntimeConfig is passed to games when they are reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Input polling ticks per second
	Seed     int64 // RNG seed, 0 lets the platform pick one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the summary a game reports to the platform after every step.
type GameState struct {
	Score    int  // Winnings in whole dollars once the game is over
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is waiting on something other than the player
}

// EventKind names something that happened during a step.
type EventKind string

const (
	EventCaseSelected EventKind = "case_selected"
	EventCaseOpened   EventKind = "case_opened"
	EventOffer        EventKind = "offer"
	EventNoDeal       EventKind = "no_deal"
	EventDeal         EventKind = "deal"
	EventFinalReveal  EventKind = "final_reveal"
	EventBankerChange EventKind = "banker_change"
)

// Event describes one game action so the platform can log it.
type Event struct {
	Kind   EventKind
	Case   int     // Case index, -1 when not applicable
	Amount float64 // Case value or offer amount
	Note   string
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State  GameState
	Events []Event
}
