package deal

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-deal/internal/core"
	"github.com/vovakirdan/tui-deal/internal/engine"
)

const (
	minWidth  = 76
	minHeight = 23

	boardX     = 0
	boardY     = 2
	boardW     = 29
	boardRows  = engine.CaseCount / 2
	gridX      = 31
	gridY      = 3
	cellWidth  = 6
	panelY     = 12
	panelW     = 44
	panelH     = 7
	statusY    = 19
	controlsY  = 22
	offerLines = 3
)

// Money formats an amount as US dollars with thousands separators.
func Money(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

// compactMoney fits an amount into a case cell.
func compactMoney(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%gM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%gK", v/1_000)
	case v >= 1:
		return fmt.Sprintf("$%g", v)
	default:
		return fmt.Sprintf("%.0f¢", math.Round(v*100))
	}
}

// Render draws the game into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.eng.State()
	g.renderHeader(dst, snap)
	g.renderMoneyBoard(dst, snap)
	g.renderCases(dst, snap)
	g.renderBanker(dst, snap)
	g.renderStatus(dst, snap)

	if g.paused {
		g.drawOverlay(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorRed)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minWidth, minHeight), core.ColorDefault)
}

func (g *Game) renderHeader(dst *core.Screen, snap engine.Snapshot) {
	dst.DrawTextCentered(0, "DEAL OR NO DEAL", core.ColorBrightYellow)

	p := snap.Personality
	line := fmt.Sprintf("Banker: %s - %s", p.Label(), p.Description())
	if !g.locked {
		line += " [Tab]"
	}
	dst.DrawTextCentered(1, line, core.ColorCyan)
}

// renderMoneyBoard draws both value columns; eliminated values are dimmed.
func (g *Game) renderMoneyBoard(dst *core.Screen, snap engine.Snapshot) {
	board := core.NewRect(boardX, boardY, boardW, boardRows+2)
	dst.DrawBox(board, core.ColorGray)
	inner := board.Inner()

	live := make(map[float64]bool, len(snap.Remaining))
	for _, v := range snap.Remaining {
		live[v] = true
	}

	values := engine.PrizeValues()
	for i, v := range values {
		col := i / boardRows
		x, y := inner.X+1+col*13, inner.Y+i%boardRows

		color := core.ColorGray
		if live[v] {
			color = core.ColorCyan
			if col == 1 {
				color = core.ColorYellow
			}
		}
		dst.DrawTextColor(x, y, fmt.Sprintf("%12s", Money(v)), color)
	}
}

// renderCases draws the case grid with the cursor and the player's case.
func (g *Game) renderCases(dst *core.Screen, snap engine.Snapshot) {
	playerValue, revealPlayer := 0.0, false
	if g.finished {
		playerValue, revealPlayer = g.caseValue, true
	}

	grid := core.NewRect(gridX, gridY, GridCols*cellWidth, 8)
	for i := range engine.CaseCount {
		x, y := grid.Cell(i, GridCols, cellWidth, 2)

		text := fmt.Sprintf("[%2d]", i+1)
		color := core.ColorWhite

		switch {
		case i == snap.PlayerCase && revealPlayer:
			text, color = compactMoney(playerValue), core.ColorBrightYellow
		case i == snap.PlayerCase:
			text, color = fmt.Sprintf("*%2d*", i+1), core.ColorBrightYellow
		case snap.IsOpened(i):
			value, _ := snap.OpenedValue(i)
			text, color = compactMoney(value), core.ColorGray
		}

		if i == g.cursor && !g.finished {
			if !snap.IsOpened(i) && i != snap.PlayerCase {
				text = fmt.Sprintf(">%2d<", i+1)
			}
			color = core.ColorBrightCyan
		}
		dst.DrawTextColor(x, y, text, color)
	}

	if snap.HasPlayerCase() {
		dst.DrawTextColor(grid.X, grid.Bottom()-1, fmt.Sprintf("Your case: #%d", snap.PlayerCase+1), core.ColorBrightYellow)
	}
}

// renderBanker draws the offer panel, or the result once the game is over.
func (g *Game) renderBanker(dst *core.Screen, snap engine.Snapshot) {
	rect := core.NewRect(gridX, panelY, panelW, panelH)
	dst.DrawBox(rect, core.ColorMagenta)
	inner := rect.Inner()
	x, y := inner.X+1, inner.Y

	if res, ok := g.Result(); ok {
		dst.DrawTextColor(x, y, "GAME OVER", core.ColorBrightRed)
		how := "played to the end"
		if res.Outcome == OutcomeDeal {
			how = "deal"
		}
		dst.DrawTextColor(x, y+1, fmt.Sprintf("You won %s (%s)", Money(res.Winnings), how), core.ColorBrightGreen)
		dst.DrawText(x, y+2, fmt.Sprintf("Case #%d had %s", res.PlayerCase+1, Money(res.CaseValue)))
		dst.DrawText(x, y+3, fmt.Sprintf("Risk profile: %s", res.Risk))
		if len(res.Offers) > 0 {
			dst.DrawText(x, y+4, fmt.Sprintf("Best offer: %s", Money(res.BestOffer)))
		}
		return
	}

	if snap.HasOffer {
		dst.DrawTextColor(x, y, fmt.Sprintf("BANKER'S %s OFFER", strings.ToUpper(ordinal(len(snap.Offers)))), core.ColorBrightRed)
		dst.DrawTextColor(x, y+1, Money(snap.Offer), core.ColorBrightGreen)
		dst.DrawTextColor(x+20, y+1, "[D]eal  [N]o deal", core.ColorWhite)
	} else {
		dst.DrawTextColor(x, y, "THE BANKER", core.ColorMagenta)
		dst.DrawTextColor(x, y+1, g.nextOfferHint(snap), core.ColorGray)
	}

	// Most recent offers last
	start := len(snap.Offers) - offerLines
	if start < 0 {
		start = 0
	}
	for i, o := range snap.Offers[start:] {
		dst.DrawText(x, y+2+i, fmt.Sprintf("Round %d: %s", o.Round, Money(o.Amount)))
	}
}

// nextOfferHint says how many more cases to open before the banker calls.
func (g *Game) nextOfferHint(snap engine.Snapshot) string {
	if !snap.HasPlayerCase() {
		return "Waiting for you to pick a case"
	}
	made := len(snap.Offers)
	if made >= len(g.thresholds) {
		return "No more offers"
	}
	left := g.thresholds[made] - len(snap.Opened)
	if left <= 0 {
		return "Offer due"
	}
	return fmt.Sprintf("Open %d more %s for an offer", left, plural(left, "case", "cases"))
}

func (g *Game) renderStatus(dst *core.Screen, snap engine.Snapshot) {
	dst.DrawTextColor(1, statusY, g.status, core.ColorBrightGreen)

	info := fmt.Sprintf("Round %d | Opened %d | Remaining %d | Phase %s",
		snap.Round, len(snap.Opened), snap.RemainingCount(), snap.Phase())
	dst.DrawTextColor(1, statusY+1, info, core.ColorGray)

	dst.DrawTextColor(1, controlsY, g.Controls(), core.ColorGray)
}

// drawOverlay draws a centered box with text.
func (g *Game) drawOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.CenteredRect(g.screenW, g.screenH, maxLen+4, len(lines)+2)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorWhite)

	for i, line := range lines {
		dst.DrawTextCentered(box.Inner().Y+i, line, core.ColorBrightYellow)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
