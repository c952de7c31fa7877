package match

// pointOutcome is the result of one simulated point.
type pointOutcome struct {
	winner      int // player index into the score arrays
	ace         bool
	doubleFault bool
}

// drawPoint draws one point outcome via an ordered cascade of independent
// uniform draws: ace, then double fault, then a regular serve win. The three
// draws are deliberately independent rather than one partitioned draw; the
// effective rates differ from a proper partition and changing this would
// change the simulated outcome distributions.
func (m *Match) drawPoint() pointOutcome {
	serverIdx := m.index(m.server)
	receiverIdx := 1 - serverIdx

	if m.rng.Float64() < m.AceProbability() {
		return pointOutcome{winner: serverIdx, ace: true}
	}
	if m.rng.Float64() < m.server.DoubleFaultProb {
		return pointOutcome{winner: receiverIdx, doubleFault: true}
	}
	if m.rng.Float64() < m.server.ServeWinProb {
		return pointOutcome{winner: serverIdx}
	}
	return pointOutcome{winner: receiverIdx}
}

// playPoint draws and applies a single point, returning the winner.
func (m *Match) playPoint() Player {
	return m.applyPoint(m.drawPoint())
}

// applyPoint applies an already-decided point outcome: counters, momentum
// tracking and, inside a tiebreak, the odd-point server rotation.
func (m *Match) applyPoint(o pointOutcome) Player {
	m.totalShots++

	if o.ace {
		m.bumpServeStat(m.server.Name, func(s *StatLine) { s.Aces++ })
	}
	if o.doubleFault {
		m.bumpServeStat(m.server.Name, func(s *StatLine) { s.DoubleFaults++ })
	}

	m.points[o.winner]++
	m.lastPointAce = o.ace

	winner := m.playerAt(o.winner)
	if m.haveLast && m.lastWinner == winner {
		m.consecutive++
	} else {
		m.consecutive = 1
	}
	m.lastWinner = winner
	m.haveLast = true

	if m.isTiebreak {
		m.tiebreakPoints++
		if m.tiebreakPoints%2 == 1 {
			m.switchServer()
		}
	}

	return winner
}

// bumpServeStat updates both the per-game and per-set counters for a player.
func (m *Match) bumpServeStat(name string, fn func(*StatLine)) {
	game := m.gameStats[name]
	fn(&game)
	m.gameStats[name] = game

	set := m.setStats[name]
	fn(&set)
	m.setStats[name] = set
}
