package simulation

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ruleStyle    = lipgloss.NewStyle().Faint(true)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	ghostStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C06CFF"))
	hunterStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6CC4FF"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6CFF8B"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6C6C"))
)

const rule = "======================================="

// Render writes the end of game report.
func (o Outcome) Render(w io.Writer) error {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(ruleStyle.Render(rule))
	line(titleStyle.Render("All done! Let's tally the results..."))
	line(ruleStyle.Render(rule))
	for _, h := range o.FearedHunters() {
		line("    * %s has run away in fear!", h.Name)
	}
	line(ruleStyle.Render(rule))
	for _, h := range o.BoredHunters() {
		line("    * %s has left due to boredom!", h.Name)
	}

	switch {
	case len(o.Hunters) > 0 && o.FearDepartures >= len(o.Hunters):
		line("All the hunters have run away in fear!")
	case len(o.Hunters) > 0 && o.BoredomDepartures >= len(o.Hunters):
		line("All the hunters have left due to boredom!")
	}

	if o.GhostWon {
		line(ghostStyle.Render("The ghost has won!"))
		line(ghostStyle.Render("The hunters failed!"))
	} else {
		line("It seems the ghost has been discovered!")
		line(hunterStyle.Render("The hunters have won the game!"))
	}

	line("The hunters collected the following evidence:")
	for _, k := range o.Evidence {
		line("    * %s", k)
	}

	if o.Correct {
		line(correctStyle.Render(fmt.Sprintf("Using the evidence they found, they correctly determined that the ghost is a %s", o.Guess)))
	} else {
		line(wrongStyle.Render(fmt.Sprintf("Using the evidence they found, they incorrectly determined that the ghost is a %s", o.Guess)))
		line("The ghost is actually %s", o.Actual)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
