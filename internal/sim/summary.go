package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/lox/tennissim/internal/match"
)

// WriteSummary prints the run's aggregate results: win percentages, total
// shots, wall-clock time and per-player serve statistics.
func WriteSummary(w io.Writer, player1, player2 match.Player, t *Totals) {
	fmt.Fprintf(w, "Percentage of match wins after %d matches:\n", t.Simulations)
	for _, p := range []match.Player{player1, player2} {
		fmt.Fprintf(w, "%s: %.2f%%\n", p.Name, t.WinPercentage(p.Name))
	}

	fmt.Fprintf(w, "\nTotal shots played: %d\n", t.TotalShots)
	fmt.Fprintf(w, "Execution time: %v\n", t.Elapsed.Round(time.Millisecond))

	fmt.Fprintf(w, "\nMatch statistics:\n")
	for _, p := range []match.Player{player1, player2} {
		fmt.Fprintf(w, "%s:\n", p.Name)
		fmt.Fprintf(w, "  Avg. aces per match: %.2f\n", t.AvgAces(p.Name))
		fmt.Fprintf(w, "  Avg. double faults per match: %.2f\n", t.AvgDoubleFaults(p.Name))
	}
}
