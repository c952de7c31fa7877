// Package match implements the tennis scoring state machine, the live
// win-probability model and the per-point outcome simulator.
//
// A Match owns all mutable score state for a single simulated match: point,
// game and set counters (always indexed by player-1/player-2 position, never
// by server/receiver), tiebreak state, momentum tracking and the append-only
// point log. The zero value is not usable; construct with New and drive with
// Play.
package match

import (
	"fmt"
	rand "math/rand/v2"
)

// StatLine counts serve outcomes for one player over some window (a game or
// a set).
type StatLine struct {
	Aces         int
	DoubleFaults int
}

// SetStats is an immutable snapshot of both players' serve stats for one
// completed set, keyed by player name. It is never mutated after the set
// closes.
type SetStats map[string]StatLine

// Match holds the state of one tennis match between two players. It is not
// safe for concurrent use; every concurrent simulation owns its own Match.
type Match struct {
	player1   Player
	player2   Player
	bestOf    int
	grandSlam bool
	rng       *rand.Rand

	server   Player
	receiver Player

	sets   [2]int
	games  [2]int
	points [2]int

	isTiebreak     bool
	tiebreakPoints int
	tiebreakServer Player

	lastWinner   Player
	haveLast     bool
	consecutive  int
	lastPointAce bool

	// gameStats resets at every game start and feeds the next-point and ace
	// adjustments; setStats accumulates across the set and is snapshotted
	// into setHistory when the set closes.
	gameStats  map[string]StatLine
	setStats   map[string]StatLine
	setHistory []SetStats

	totalShots int
	pointLog   []PointRecord
}

// New constructs a match between two validated players. bestOf must be a
// positive odd number (3 and 5 are the usual values); grandSlam enables the
// 10-point tiebreak in the deciding set. The rng drives every point outcome
// and the opening coin flip.
func New(player1, player2 Player, bestOf int, grandSlam bool, rng *rand.Rand) (*Match, error) {
	if err := player1.Validate(); err != nil {
		return nil, err
	}
	if err := player2.Validate(); err != nil {
		return nil, err
	}
	if player1.Name == player2.Name {
		return nil, fmt.Errorf("players must have distinct names, both are %q", player1.Name)
	}
	if bestOf <= 0 || bestOf%2 == 0 {
		return nil, fmt.Errorf("best_of must be a positive odd number, got %d", bestOf)
	}
	if rng == nil {
		return nil, fmt.Errorf("rng is required")
	}
	return &Match{
		player1:   player1,
		player2:   player2,
		bestOf:    bestOf,
		grandSlam: grandSlam,
		rng:       rng,
		gameStats: map[string]StatLine{player1.Name: {}, player2.Name: {}},
		setStats:  map[string]StatLine{player1.Name: {}, player2.Name: {}},
	}, nil
}

// index maps a player to its position in the score arrays. An unknown player
// means a caller broke the two-player invariant, which is unrecoverable.
func (m *Match) index(p Player) int {
	switch p.Name {
	case m.player1.Name:
		return 0
	case m.player2.Name:
		return 1
	}
	panic(fmt.Sprintf("match: unknown player %q", p.Name))
}

func (m *Match) playerAt(i int) Player {
	if i == 0 {
		return m.player1
	}
	return m.player2
}

func (m *Match) switchServer() {
	m.server, m.receiver = m.receiver, m.server
}

// isFinalSet reports whether the match is in its last possible set.
func (m *Match) isFinalSet() bool {
	return m.sets[0]+m.sets[1] == m.bestOf-1
}

// setOver reports whether the current set is decided by regular games.
func (m *Match) setOver() bool {
	leader := max(m.games[0], m.games[1])
	diff := m.games[0] - m.games[1]
	if diff < 0 {
		diff = -diff
	}
	return leader >= 6 && diff >= 2
}

// tiebreakOver reports whether the running tiebreak has been won. A
// grand-slam deciding set plays to 10 points, every other tiebreak to 7,
// always with a two-point margin.
func (m *Match) tiebreakOver() bool {
	target := 7
	if m.grandSlam && m.isFinalSet() {
		target = 10
	}
	leader := max(m.points[0], m.points[1])
	diff := m.points[0] - m.points[1]
	if diff < 0 {
		diff = -diff
	}
	return leader >= target && diff >= 2
}

// recordPoint applies game/set/tiebreak transitions for the point that was
// just played and appends a PointRecord. The point score string is formatted
// from the pre-transition points; game and set scores and all probabilities
// reflect the post-transition state.
func (m *Match) recordPoint() (gameOver, setOver bool) {
	pointScore := m.pointScoreString()

	if m.isTiebreak {
		if m.tiebreakOver() {
			setOver = true
			gameOver = true
			w := 0
			if m.points[1] > m.points[0] {
				w = 1
			}
			m.games[w]++
			m.sets[w]++
			m.isTiebreak = false
		}
	} else {
		if pointScore == scoreGame {
			gameOver = true
			w := 0
			if m.points[1] > m.points[0] {
				w = 1
			}
			m.games[w]++
		}
		if m.setOver() {
			setOver = true
			w := 0
			if m.games[1] > m.games[0] {
				w = 1
			}
			m.sets[w]++
		} else if m.games[0] == 6 && m.games[1] == 6 {
			m.isTiebreak = true
			m.points = [2]int{}
			m.tiebreakServer = m.server
			m.tiebreakPoints = 0
		}
	}

	m.pointLog = append(m.pointLog, m.snapshotRecord(pointScore))
	return gameOver, setOver
}

// playGame plays points until the game (or, in a tiebreak, the set) is
// decided. It returns the winner of the deciding point and whether the set
// ended with it.
func (m *Match) playGame() (Player, bool) {
	if !m.isTiebreak {
		m.points = [2]int{}
	}
	m.haveLast = false
	m.lastWinner = Player{}
	m.consecutive = 0
	m.lastPointAce = false
	m.gameStats[m.player1.Name] = StatLine{}
	m.gameStats[m.player2.Name] = StatLine{}

	for {
		winner := m.playPoint()
		gameOver, setOver := m.recordPoint()
		if gameOver || setOver {
			if !setOver && !m.isTiebreak {
				m.switchServer()
			}
			return winner, setOver
		}
	}
}

// playSet plays games until the set is decided, snapshots the set's serve
// stats into the history and resets game-level state for the next set.
func (m *Match) playSet() Player {
	for {
		winner, setOver := m.playGame()
		if !setOver {
			continue
		}

		snapshot := SetStats{
			m.player1.Name: m.setStats[m.player1.Name],
			m.player2.Name: m.setStats[m.player2.Name],
		}
		m.setHistory = append(m.setHistory, snapshot)
		m.setStats[m.player1.Name] = StatLine{}
		m.setStats[m.player2.Name] = StatLine{}

		m.games = [2]int{}
		m.points = [2]int{}
		m.isTiebreak = false
		m.tiebreakPoints = 0
		m.switchServer()
		return winner
	}
}

// Play runs the match to completion and returns the winner. The first server
// is chosen by coin flip. After Play returns, TotalShots, PointLog,
// SetHistory, Aces and DoubleFaults hold the match's harvest.
func (m *Match) Play() Player {
	if m.rng.IntN(2) == 0 {
		m.server, m.receiver = m.player1, m.player2
	} else {
		m.server, m.receiver = m.player2, m.player1
	}

	target := m.bestOf/2 + 1
	for m.sets[0] < target && m.sets[1] < target {
		m.playSet()
	}

	if m.sets[0] > m.sets[1] {
		return m.player1
	}
	return m.player2
}

// Sets returns the set counters, player-1 first.
func (m *Match) Sets() [2]int { return m.sets }

// Games returns the game counters for the current set, player-1 first.
func (m *Match) Games() [2]int { return m.games }

// Points returns the point counters for the current game, player-1 first.
func (m *Match) Points() [2]int { return m.points }

// InTiebreak reports whether a tiebreak is in progress.
func (m *Match) InTiebreak() bool { return m.isTiebreak }

// Server returns the player currently serving.
func (m *Match) Server() Player { return m.server }

// Receiver returns the player currently receiving.
func (m *Match) Receiver() Player { return m.receiver }

// TotalShots returns the number of points played so far.
func (m *Match) TotalShots() int { return m.totalShots }

// PointLog returns the append-only point log.
func (m *Match) PointLog() []PointRecord { return m.pointLog }

// SetHistory returns one stats snapshot per completed set.
func (m *Match) SetHistory() []SetStats { return m.setHistory }

// Aces returns the named player's aces summed across all completed sets.
func (m *Match) Aces(name string) int {
	total := 0
	for _, set := range m.setHistory {
		total += set[name].Aces
	}
	return total
}

// DoubleFaults returns the named player's double faults summed across all
// completed sets.
func (m *Match) DoubleFaults(name string) int {
	total := 0
	for _, set := range m.setHistory {
		total += set[name].DoubleFaults
	}
	return total
}
