package match

// PointRecord is an immutable snapshot of one played point: who served, the
// formatted scores, and the ten live probability estimates computed at that
// instant. Records are created once per point and never mutated; ownership
// moves into the match's point log and, downstream, into batch log buffers.
type PointRecord struct {
	Server     string `json:"server"`
	Receiver   string `json:"receiver"`
	PointScore string `json:"point_score"`
	GameScore  string `json:"game_score"`
	SetScore   string `json:"set_score"`

	MatchWinProb1     float64 `json:"p1_match_win_prob"`
	MatchWinProb2     float64 `json:"p2_match_win_prob"`
	SetWinProb1       float64 `json:"p1_set_win_prob"`
	SetWinProb2       float64 `json:"p2_set_win_prob"`
	GameWinProb1      float64 `json:"p1_game_win_prob"`
	GameWinProb2      float64 `json:"p2_game_win_prob"`
	NextPointWinProb1 float64 `json:"p1_next_point_win_prob"`
	NextPointWinProb2 float64 `json:"p2_next_point_win_prob"`
	NextServeAceProb  float64 `json:"next_serve_ace_prob"`
	TiebreakProb      float64 `json:"tiebreak_prob"`
}

// snapshotRecord builds the record for the point that was just applied. The
// caller supplies the pre-transition point score; everything else reflects
// the post-transition state.
func (m *Match) snapshotRecord(pointScore string) PointRecord {
	return PointRecord{
		Server:     m.server.Name,
		Receiver:   m.receiver.Name,
		PointScore: pointScore,
		GameScore:  m.gameScoreString(),
		SetScore:   m.setScoreString(),

		MatchWinProb1:     m.MatchWinProbability(m.player1),
		MatchWinProb2:     m.MatchWinProbability(m.player2),
		SetWinProb1:       m.SetWinProbability(m.player1),
		SetWinProb2:       m.SetWinProbability(m.player2),
		GameWinProb1:      m.GameWinProbability(m.player1),
		GameWinProb2:      m.GameWinProbability(m.player2),
		NextPointWinProb1: m.NextPointWinProbability(m.player1),
		NextPointWinProb2: m.NextPointWinProbability(m.player2),
		NextServeAceProb:  m.AceProbability(),
		TiebreakProb:      m.TiebreakProbability(),
	}
}
