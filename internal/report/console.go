// Package report prints walk results to a terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/guptarohit/asciigraph"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/lukaszgryglicki/photonwalk/internal/photonwalk"
)

const (
	photonColor = "#2E66FF"
	chartHeight = 10
	chartWidth  = 60
)

// Console is a Reporter writing a results panel. On a terminal the panel is
// rendered markdown; otherwise the markdown source is written as is.
type Console struct {
	w      io.Writer
	tty    bool
	render func(string) (string, error)
	err    error
}

var _ photonwalk.Reporter = (*Console)(nil)

func NewConsole(w io.Writer) *Console {
	c := &Console{w: w}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.tty = true
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle()); err == nil {
			c.render = r.Render
		}
	}
	return c
}

// Markdown is the results panel source.
func Markdown(st photonwalk.Stats) string {
	var b strings.Builder
	b.WriteString("**Simulation Results**\n\n")
	fmt.Fprintf(&b, "- Duration: %s\n", st.DurationString())
	fmt.Fprintf(&b, "- Total Steps: %d\n", st.TotalSteps)
	fmt.Fprintf(&b, "- Escape Time: %d Years\n", st.EscapeYears)
	return b.String()
}

func (c *Console) Report(st photonwalk.Stats) {
	if c.tty {
		p := termenv.ColorProfile()
		c.write(termenv.String("Simulation Ended").Foreground(p.Color(photonColor)).Bold().String() + "\n")
	} else {
		c.write("Simulation Ended\n")
	}
	md := Markdown(st)
	if c.render != nil {
		if out, err := c.render(md); err == nil {
			c.write(out)
			return
		}
	}
	c.write(md)
}

// Ensemble prints the aggregate of many walks.
func (c *Console) Ensemble(res photonwalk.EnsembleResult) {
	c.write(fmt.Sprintf("Walks: %d (completed %d, capped %d)\n", res.Walks, res.Completed, res.Capped))
	c.write(fmt.Sprintf("Steps: mean %.1f, min %d, max %d\n", res.MeanSteps, res.MinSteps, res.MaxSteps))
	c.write(fmt.Sprintf("Escape Time: mean %.0f Years\n", res.MeanEscapeYears))
}

// Farthest prints how far from the center the photon got and the escape radius.
func (c *Console) Farthest(maxDistance, boundary photonwalk.Real) {
	c.write(fmt.Sprintf("Farthest: %.2f of %.2f\n", maxDistance, boundary))
}

// Chart plots the distance from the center after every step.
func (c *Console) Chart(distances []photonwalk.Real) {
	if len(distances) == 0 {
		return
	}
	c.write(ChartString(distances) + "\n")
}

func ChartString(distances []photonwalk.Real) string {
	return asciigraph.Plot(distances,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption("distance from center per step"),
	)
}

func (c *Console) write(s string) {
	if c.err != nil {
		return
	}
	if _, err := io.WriteString(c.w, s); err != nil {
		c.err = err
	}
}

// Err returns the first write or render error.
func (c *Console) Err() error { return c.err }
