package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerValidate(t *testing.T) {
	t.Parallel()

	valid := Player{Name: "Alpha", ServeWinProb: 0.65, AceProb: 0.1, DoubleFaultProb: 0.05}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		player Player
	}{
		{"empty name", Player{ServeWinProb: 0.5}},
		{"serve win too high", Player{Name: "A", ServeWinProb: 1.1}},
		{"serve win negative", Player{Name: "A", ServeWinProb: -0.1}},
		{"ace prob too high", Player{Name: "A", ServeWinProb: 0.5, AceProb: 2}},
		{"double fault negative", Player{Name: "A", ServeWinProb: 0.5, DoubleFaultProb: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.player.Validate())
		})
	}
}
