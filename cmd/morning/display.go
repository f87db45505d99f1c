package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	goodStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	normalStyle       = lipgloss.NewStyle().Padding(0, 1)
	rightAlignedStyle = lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
	tableBorderColor  = "#705090"
)

func newTable(headers ...string) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(tableBorderColor))).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return rightAlignedStyle
			}
			return normalStyle
		}).
		Headers(headers...)
}

// summary prints "label: value" lines under a title.
func summary(out io.Writer, title string, rows [][2]string) {
	fmt.Fprintln(out, titleStyle.Render(title))
	for _, row := range rows {
		fmt.Fprintf(out, "  %s %s\n", labelStyle.Render(row[0]+":"), row[1])
	}
}

// epochBar shows training progress, one tick per epoch.
type epochBar struct {
	bar *progressbar.ProgressBar
}

func newEpochBar(out io.Writer, epochs int, description string) *epochBar {
	return &epochBar{bar: progressbar.NewOptions(epochs,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("epochs"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
	)}
}

func (b *epochBar) onEpoch(epoch int, loss float64) {
	if b == nil {
		return
	}
	if epoch%10 == 0 {
		b.bar.Describe("error " + formatFloat(loss))
	}
	_ = b.bar.Add(1)
}

func (b *epochBar) finish(out io.Writer) {
	if b == nil {
		return
	}
	_ = b.bar.Finish()
	fmt.Fprintln(out)
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'f', 4, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

// formatError colors an error value against a threshold.
func formatError(loss, threshold float64) string {
	s := formatFloat(loss)
	if threshold > 0 && loss <= threshold {
		return goodStyle.Render(s)
	}
	if threshold > 0 {
		return badStyle.Render(s)
	}
	return s
}
