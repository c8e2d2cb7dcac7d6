package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/enikolados/sitemetrics/internal/core"
)

const (
	cellSize = 11
	cellGap  = 2
	cellStep = cellSize + cellGap

	pad      = 12
	gutter   = 28 // weekday label column
	titleH   = 22
	monthH   = 16
	captionH = 22
)

//go:embed templates/calendar.svg.tmpl
var calendarTemplate string

var calendarTmpl = template.Must(template.New("calendar").Parse(calendarTemplate))

type cellView struct {
	X, Y    int
	Color   string
	Tooltip string
}

type labelView struct {
	X, Y int
	Text string
}

type calendarViewModel struct {
	Width  int
	Height int

	Theme    Theme
	Title    string
	TitleX   int
	TitleY   int
	CellSize int

	Months   []labelView
	Weekdays []labelView
	Cells    []cellView

	Caption  string
	CaptionX int
	CaptionY int
}

// Calendar renders cal as a self-contained SVG heatmap in the given
// theme. The output depends only on the arguments; rendering performs
// no I/O.
func Calendar(cal core.ContributionCalendar, leveler core.Leveler, theme Theme, title string) ([]byte, error) {
	if err := cal.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	cols := len(cal.Weeks)

	top := pad + monthH
	if title != "" {
		top += titleH
	}
	gridLeft := pad + gutter

	vm := calendarViewModel{
		Width:    gridLeft + cols*cellStep - cellGap + pad,
		Height:   top + 7*cellStep - cellGap + captionH + pad,
		Theme:    theme,
		Title:    xmlEscape(title),
		TitleX:   pad,
		TitleY:   pad + 14,
		CellSize: cellSize,
		Months:   monthLabels(cal.Weeks, gridLeft, top-5),
		Weekdays: weekdayLabels(pad, top),
		Cells:    cells(cal.Weeks, leveler, theme, gridLeft, top),
		Caption:  fmt.Sprintf("%d contributions in the last year", cal.Total),
		CaptionX: gridLeft,
		CaptionY: top + 7*cellStep - cellGap + 15,
	}

	var buf bytes.Buffer
	if err := calendarTmpl.Execute(&buf, vm); err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return buf.Bytes(), nil
}

func cells(weeks []core.ContributionWeek, leveler core.Leveler, theme Theme, left, top int) []cellView {
	var out []cellView
	for col, w := range weeks {
		for _, d := range w.Days {
			row := int(d.Date.Weekday())
			out = append(out, cellView{
				X:       left + col*cellStep,
				Y:       top + row*cellStep,
				Color:   theme.Ramp[leveler.Level(d.Count)],
				Tooltip: tooltip(d),
			})
		}
	}
	return out
}

func tooltip(d core.ContributionDay) string {
	noun := "contributions"
	if d.Count == 1 {
		noun = "contribution"
	}
	return fmt.Sprintf("%d %s on %s", d.Count, noun, d.Date.Format("2006-01-02"))
}

// monthLabels emits one label per month transition along the columns,
// suppressing labels that would crowd the previous one.
func monthLabels(weeks []core.ContributionWeek, left, y int) []labelView {
	var out []labelView
	lastCol := -3
	prevMonth := -1

	for col, w := range weeks {
		m := int(w.Days[0].Date.Month())
		if m == prevMonth {
			continue
		}
		prevMonth = m
		if col-lastCol < 3 {
			continue
		}
		lastCol = col
		out = append(out, labelView{
			X:    left + col*cellStep,
			Y:    y,
			Text: w.Days[0].Date.Month().String()[:3],
		})
	}
	return out
}

func weekdayLabels(x, top int) []labelView {
	names := []string{"Mon", "Wed", "Fri"}
	rows := []int{1, 3, 5}
	out := make([]labelView, 0, len(rows))
	for i, row := range rows {
		out = append(out, labelView{
			X:    x,
			Y:    top + row*cellStep + 9,
			Text: names[i],
		})
	}
	return out
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
