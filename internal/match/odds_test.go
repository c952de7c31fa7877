package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tennissim/internal/randutil"
)

func TestMatchWinProbability(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t)
	m.sets = [2]int{1, 0}
	m.games = [2]int{3, 1}

	assert.InDelta(t, 0.62, m.MatchWinProbability(m.player1), 1e-9)
	assert.InDelta(t, 0.38, m.MatchWinProbability(m.player2), 1e-9)

	// Clamped at the extremes.
	m.sets = [2]int{0, 5}
	m.games = [2]int{0, 6}
	assert.Equal(t, 0.0, m.MatchWinProbability(m.player1))
	assert.Equal(t, 1.0, m.MatchWinProbability(m.player2))
}

func TestSetWinProbability(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t)
	m.games = [2]int{4, 1}

	assert.InDelta(t, 0.65, m.SetWinProbability(m.player1), 1e-9)
	assert.InDelta(t, 0.35, m.SetWinProbability(m.player2), 1e-9)
}

func TestGameWinProbability(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t)
	m.points = [2]int{2, 0}

	// Server Alpha has serve base 0.65 plus a two-point lead.
	assert.InDelta(t, 0.75, m.GameWinProbability(m.player1), 1e-9)
	// Receiver Beta gets the complement base minus the same lead.
	assert.InDelta(t, 0.25, m.GameWinProbability(m.player2), 1e-9)
}

func TestNextPointWinProbabilityLeadSign(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t)
	m.server, m.receiver = m.player2, m.player1
	m.points = [2]int{2, 0}

	// The lead adjustment is computed from the player-1 point difference and
	// flipped only for the receiver, so the trailing server Beta is credited
	// with Alpha's lead here.
	assert.InDelta(t, 0.62+0.04, m.NextPointWinProbability(m.player2), 1e-9)
	assert.InDelta(t, 0.38-0.04, m.NextPointWinProbability(m.player1), 1e-9)
}

func TestNextPointWinProbabilityMomentumCap(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t)
	m.haveLast = true
	m.lastWinner = m.player1
	m.consecutive = 9

	// Momentum caps at 0.05 in the winner's favor and mirrors against the
	// other player.
	assert.InDelta(t, 0.65+0.05, m.NextPointWinProbability(m.player1), 1e-9)
	assert.InDelta(t, 0.35-0.05, m.NextPointWinProbability(m.player2), 1e-9)
}

func TestNextPointWinProbabilityServeStats(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t)
	m.gameStats[m.player1.Name] = StatLine{Aces: 1}
	assert.InDelta(t, 0.68, m.NextPointWinProbability(m.player1), 1e-9)

	m.gameStats[m.player1.Name] = StatLine{Aces: 1, DoubleFaults: 2}
	assert.InDelta(t, 0.65, m.NextPointWinProbability(m.player1), 1e-9)

	m.gameStats[m.player1.Name] = StatLine{DoubleFaults: 1}
	assert.InDelta(t, 0.62, m.NextPointWinProbability(m.player1), 1e-9)
}

func TestAceProbability(t *testing.T) {
	t.Parallel()

	m := newTestMatch(t)
	assert.InDelta(t, 0.10, m.AceProbability(), 1e-9)

	// Lead, momentum and a fresh ace stack up.
	m.points = [2]int{3, 0}
	m.haveLast = true
	m.lastWinner = m.player1
	m.consecutive = 3
	m.lastPointAce = true
	assert.InDelta(t, 0.10+0.03+0.015+0.02, m.AceProbability(), 1e-9)

	// Momentum only counts for the server.
	m.lastWinner = m.player2
	assert.InDelta(t, 0.10+0.03+0.02, m.AceProbability(), 1e-9)
}

func TestAceProbabilityBounds(t *testing.T) {
	t.Parallel()

	p1 := Player{Name: "Big", ServeWinProb: 0.9, AceProb: 0.29}
	p2 := Player{Name: "Small", ServeWinProb: 0.5}
	m, err := New(p1, p2, 5, true, randutil.New(1))
	require.NoError(t, err)
	m.server, m.receiver = m.player1, m.player2

	m.points = [2]int{3, 0}
	m.haveLast = true
	m.lastWinner = m.player1
	m.consecutive = 10
	m.lastPointAce = true
	assert.Equal(t, maxAceProbability, m.AceProbability())

	m.points = [2]int{0, 3}
	m.lastWinner = m.player2
	m.lastPointAce = false
	m.server = m.player2
	assert.Equal(t, 0.0, m.AceProbability(), "negative adjustments clamp to zero")
}

func TestTiebreakProbabilitySteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		games [2]int
		want  float64
	}{
		{[2]int{0, 0}, 0.1},
		{[2]int{5, 4}, 0.1},
		{[2]int{5, 5}, 0.2},
		{[2]int{6, 5}, 0.5},
		{[2]int{6, 6}, 1.0},
		{[2]int{7, 6}, 1.0},
	}

	for _, tt := range tests {
		m := newTestMatch(t)
		m.games = tt.games
		assert.Equal(t, tt.want, m.TiebreakProbability(), "games %v", tt.games)
	}
}

func TestProbabilitiesStayInRange(t *testing.T) {
	t.Parallel()

	p1, p2 := testPlayers()
	m, err := New(p1, p2, 5, true, randutil.New(3))
	require.NoError(t, err)
	m.Play()

	for i, rec := range m.PointLog() {
		for name, v := range map[string]float64{
			"p1 match":      rec.MatchWinProb1,
			"p2 match":      rec.MatchWinProb2,
			"p1 set":        rec.SetWinProb1,
			"p2 set":        rec.SetWinProb2,
			"p1 game":       rec.GameWinProb1,
			"p2 game":       rec.GameWinProb2,
			"p1 next point": rec.NextPointWinProb1,
			"p2 next point": rec.NextPointWinProb2,
			"tiebreak":      rec.TiebreakProb,
		} {
			assert.GreaterOrEqual(t, v, 0.0, "point %d %s", i, name)
			assert.LessOrEqual(t, v, 1.0, "point %d %s", i, name)
		}
		assert.GreaterOrEqual(t, rec.NextServeAceProb, 0.0, "point %d ace", i)
		assert.LessOrEqual(t, rec.NextServeAceProb, maxAceProbability, "point %d ace", i)
	}
}
