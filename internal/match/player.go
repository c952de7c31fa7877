package match

import "fmt"

// Player is an immutable per-point skill profile. Players are compared by
// value; Name is the stable identifier within a match and must be unique
// between the two sides.
type Player struct {
	Name            string
	ServeWinProb    float64
	AceProb         float64
	DoubleFaultProb float64
}

// Validate checks that the profile is usable for simulation. A probability
// outside [0,1] indicates a broken invariant, not a runtime condition.
func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	probs := []struct {
		name  string
		value float64
	}{
		{"serve_win_prob", p.ServeWinProb},
		{"ace_prob", p.AceProb},
		{"double_fault_prob", p.DoubleFaultProb},
	}
	for _, pr := range probs {
		if pr.value < 0 || pr.value > 1 {
			return fmt.Errorf("player %s: %s %v out of range [0,1]", p.Name, pr.name, pr.value)
		}
	}
	return nil
}
