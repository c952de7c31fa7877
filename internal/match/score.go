package match

import (
	"fmt"
	"strconv"
)

// scoreGame is the sentinel point score that ends a regular game: the leader
// has at least four points and a two-point margin.
const scoreGame = "GAME"

// pointScoreString formats the current game's point score from the server's
// perspective. Tiebreak points are numeric; regular games use tennis scores
// with Deuce, Ad-In and Ad-Out.
func (m *Match) pointScoreString() string {
	si := m.index(m.server)
	sp, rp := m.points[si], m.points[1-si]

	if m.isTiebreak {
		return fmt.Sprintf("%d-%d", sp, rp)
	}

	diff := sp - rp
	if diff < 0 {
		diff = -diff
	}

	switch {
	case sp == rp && sp >= 3:
		return "Deuce"
	case (sp >= 4 || rp >= 4) && diff == 1:
		if sp > rp {
			return "Ad-In"
		}
		return "Ad-Out"
	case (sp >= 4 || rp >= 4) && diff >= 2:
		return scoreGame
	default:
		return tennisPoint(sp) + "-" + tennisPoint(rp)
	}
}

func tennisPoint(points int) string {
	switch points {
	case 0:
		return "0"
	case 1:
		return "15"
	case 2:
		return "30"
	case 3:
		return "40"
	default:
		return strconv.Itoa(points)
	}
}

// gameScoreString formats the current set's games from the server's
// perspective.
func (m *Match) gameScoreString() string {
	si := m.index(m.server)
	return fmt.Sprintf("%d-%d", m.games[si], m.games[1-si])
}

// setScoreString formats the completed sets from the server's perspective.
func (m *Match) setScoreString() string {
	si := m.index(m.server)
	return fmt.Sprintf("%d-%d", m.sets[si], m.sets[1-si])
}
