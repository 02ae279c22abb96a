// Package overlay is the passive 2D text layer drawn over the garden: the time and
// score labels and the two onboarding prompts.
//
// Nothing here reads session state. The host assigns values and toggles visibility
// explicitly; the overlay only remembers what it last rendered.
package overlay

import (
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tui-whackamole/internal/core"
)

// Nominal surface the default positions are expressed in.
const (
	NominalWidth  = 1024
	NominalHeight = 768
)

// Prompt texts.
const (
	FindSurfaceText = "MOVE AROUND TO FIND A SURFACE"
	PlaceGardenText = "TOUCH TO PLACE THE GARDEN"
)

// LabelID names one of the overlay's labels.
type LabelID int

const (
	TimeLabel LabelID = iota
	ScoreLabel
	FindSurfacePrompt
	PlacePrompt
	labelCount
)

// Label is a piece of text centered on (X, Y) in surface coordinates.
type Label struct {
	Text    string
	X, Y    float64
	Visible bool
	Color   core.Color
}

// Overlay holds the labels and the surface size their positions refer to.
type Overlay struct {
	width, height float64
	labels        [labelCount]Label
}

// New creates an overlay for a surface of the given size with the default layout.
// Labels and prompts start hidden.
func New(width, height float64) *Overlay {
	o := &Overlay{width: NominalWidth, height: NominalHeight}
	o.labels[TimeLabel] = Label{X: 128, Y: 32, Color: core.ColorWhite}
	o.labels[ScoreLabel] = Label{X: NominalWidth - 128, Y: 32, Color: core.ColorBrightYellow}
	o.labels[FindSurfacePrompt] = Label{Text: FindSurfaceText, X: NominalWidth / 2, Y: 64, Color: core.ColorCyan}
	o.labels[PlacePrompt] = Label{Text: PlaceGardenText, X: NominalWidth / 2, Y: 64, Color: core.ColorCyan}
	o.SetTime(0)
	o.SetScore(0)
	o.Resize(width, height)
	return o
}

// Size returns the current surface size.
func (o *Overlay) Size() (float64, float64) {
	return o.width, o.height
}

// SetTime assigns the remaining seconds. It reports whether the text changed.
func (o *Overlay) SetTime(seconds int) bool {
	return o.setText(TimeLabel, fmt.Sprintf("Time: %d", seconds))
}

// SetScore assigns the score. It reports whether the text changed.
func (o *Overlay) SetScore(score int) bool {
	return o.setText(ScoreLabel, fmt.Sprintf("Score: %d", score))
}

func (o *Overlay) setText(id LabelID, text string) bool {
	if o.labels[id].Text == text {
		return false
	}
	o.labels[id].Text = text
	return true
}

// ShowFindSurface toggles the find-surface prompt.
func (o *Overlay) ShowFindSurface(visible bool) {
	o.labels[FindSurfacePrompt].Visible = visible
}

// ShowPlacePrompt toggles the place-the-garden prompt.
func (o *Overlay) ShowPlacePrompt(visible bool) {
	o.labels[PlacePrompt].Visible = visible
}

// ShowStats toggles the time and score labels together.
func (o *Overlay) ShowStats(visible bool) {
	o.labels[TimeLabel].Visible = visible
	o.labels[ScoreLabel].Visible = visible
}

// Label returns a copy of one label.
func (o *Overlay) Label(id LabelID) Label {
	if id < 0 || id >= labelCount {
		return Label{}
	}
	return o.labels[id]
}

// Resize rescales every label position proportionally to the new surface size.
// Non-positive sizes are ignored.
func (o *Overlay) Resize(width, height float64) {
	if !(width > 0) || !(height > 0) {
		return
	}
	if width == o.width && height == o.height {
		return
	}
	for i := range o.labels {
		o.labels[i].X = o.labels[i].X * width / o.width
		o.labels[i].Y = o.labels[i].Y * height / o.height
	}
	o.width, o.height = width, height
}

// Render draws the visible labels onto s. The surface is assumed to be measured in
// screen cells, so positions map to cells by rounding.
func (o *Overlay) Render(s *core.Screen) {
	for _, l := range o.labels {
		if !l.Visible || l.Text == "" {
			continue
		}
		w := runewidth.StringWidth(l.Text)
		x := int(math.Round(l.X)) - w/2
		y := int(math.Round(l.Y))
		x = core.Clamp(x, 0, core.Max(s.Width()-w, 0))
		s.DrawTextColored(x, y, l.Text, l.Color)
	}
}
