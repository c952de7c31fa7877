package match

import "math"

// Live win-probability heuristics. These are logging/analytics estimates
// recomputed after every point; none of them feed back into point outcomes
// except AceProbability, which the point simulator consumes.

const maxAceProbability = 0.3

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// MatchWinProbability estimates the named player's chance of winning the
// match from the current set and game counts.
func (m *Match) MatchWinProbability(p Player) float64 {
	i := m.index(p)
	setDiff := float64(m.sets[i] - m.sets[1-i])
	gameDiff := float64(m.games[i] - m.games[1-i])
	return clamp01(0.5 + 0.1*setDiff + 0.01*gameDiff)
}

// SetWinProbability estimates the named player's chance of winning the
// current set from the game counts.
func (m *Match) SetWinProbability(p Player) float64 {
	i := m.index(p)
	gameDiff := float64(m.games[i] - m.games[1-i])
	return clamp01(0.5 + 0.05*gameDiff)
}

// GameWinProbability estimates the named player's chance of winning the
// current game: the serve-win probability (or its complement for the
// receiver) adjusted by the point lead.
func (m *Match) GameWinProbability(p Player) float64 {
	i := m.index(p)
	base := m.server.ServeWinProb
	if p.Name != m.server.Name {
		base = 1 - m.server.ServeWinProb
	}
	pointDiff := float64(m.points[i] - m.points[1-i])
	return clamp01(base + 0.05*pointDiff)
}

// NextPointWinProbability estimates the named player's chance of winning the
// next point: serve base, point-lead adjustment, a momentum term capped at
// 0.05, and recent ace/double-fault adjustments from the running game stats.
func (m *Match) NextPointWinProbability(p Player) float64 {
	base := m.server.ServeWinProb
	if p.Name != m.server.Name {
		base = 1 - m.server.ServeWinProb
	}

	// The lead adjustment is always the player-1 point difference with the
	// sign flipped for the receiver, not the named player's own lead.
	scoreDiff := float64(m.points[0] - m.points[1])
	scoreAdj := 0.02 * scoreDiff
	if p.Name != m.server.Name {
		scoreAdj = -scoreAdj
	}

	var momentum float64
	if m.haveLast {
		momentum = math.Min(0.01*float64(m.consecutive), 0.05)
		if m.lastWinner != p {
			momentum = -momentum
		}
	}

	var aceAdj, dfAdj float64
	if m.gameStats[p.Name].Aces > 0 {
		aceAdj = 0.03
	}
	if m.gameStats[p.Name].DoubleFaults > 0 {
		dfAdj = -0.03
	}

	return clamp01(base + scoreAdj + momentum + aceAdj + dfAdj)
}

// AceProbability estimates the chance the next serve is an ace, bounded to
// [0, 0.3]. The point simulator draws against this value.
func (m *Match) AceProbability() float64 {
	base := m.server.AceProb
	scoreAdj := 0.01 * float64(m.points[0]-m.points[1])

	var momentum float64
	if m.haveLast && m.lastWinner == m.server {
		momentum = math.Min(0.005*float64(m.consecutive), 0.02)
	}

	var recentAce float64
	if m.lastPointAce {
		recentAce = 0.02
	}

	return math.Max(0, math.Min(maxAceProbability, base+scoreAdj+momentum+recentAce))
}

// TiebreakProbability is a step function of the total games played this set.
func (m *Match) TiebreakProbability() float64 {
	switch sum := m.games[0] + m.games[1]; {
	case sum <= 9:
		return 0.1
	case sum == 10:
		return 0.2
	case sum == 11:
		return 0.5
	default:
		return 1.0
	}
}
