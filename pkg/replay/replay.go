// Package replay renders recorded sort steps as terminal bar charts.
package replay

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rhuss/stepsort/pkg/api"
)

// Palette, shared with the other CLI output.
var (
	purple = lipgloss.Color("99")
	yellow = lipgloss.Color("214")
	green  = lipgloss.Color("76")
	dim    = lipgloss.Color("243")
)

const (
	barFull     = "█"
	barNegative = "▒"
)

// Options controls frame rendering.
type Options struct {
	// Width is the length of the longest bar in cells. Default 40.
	Width int

	// Renderer styles the output. Nil uses lipgloss.DefaultRenderer(),
	// which drops colors when stdout is not a terminal.
	Renderer *lipgloss.Renderer
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 40
	}
	if o.Renderer == nil {
		o.Renderer = lipgloss.DefaultRenderer()
	}
	return o
}

type styles struct {
	pivot, compared, plain, label, done lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		pivot:    r.NewStyle().Foreground(purple).Bold(true),
		compared: r.NewStyle().Foreground(yellow),
		plain:    r.NewStyle().Foreground(dim),
		label:    r.NewStyle().Foreground(dim),
		done:     r.NewStyle().Foreground(green).Bold(true),
	}
}

// Render returns one frame: a line per element with its index, a marker
// (P for the pivot, * for compared indices), a bar scaled to the largest
// magnitude and the value. The result ends with a newline.
func Render(step api.Step, opts Options) string {
	opts = opts.withDefaults()
	st := newStyles(opts.Renderer)

	maxAbs := 0.0
	for _, v := range step.Array {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}
	idxWidth := len(strconv.Itoa(max(len(step.Array)-1, 0)))

	var sb strings.Builder
	for i, v := range step.Array {
		marker, style := " ", st.plain
		switch {
		case step.Pivot != nil && *step.Pivot == i:
			marker, style = "P", st.pivot
		case slices.Contains(step.Compared, i):
			marker, style = "*", st.compared
		}

		label := st.label.Render(fmt.Sprintf("%*d", idxWidth, i))
		fmt.Fprintf(&sb, "%s %s %s %s\n",
			label, style.Render(marker), style.Render(bar(v, maxAbs, opts.Width)), formatValue(v))
	}
	return sb.String()
}

// bar draws |v| scaled against maxAbs. Non-zero values get at least one cell.
func bar(v, maxAbs float64, width int) string {
	if v == 0 || maxAbs == 0 {
		return ""
	}
	n := int(math.Round(math.Abs(v) / maxAbs * float64(width)))
	n = max(n, 1)
	if v < 0 {
		return strings.Repeat(barNegative, n)
	}
	return strings.Repeat(barFull, n)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Header describes step i (zero based) of total.
func Header(i, total int, step api.Step, opts Options) string {
	opts = opts.withDefaults()
	st := newStyles(opts.Renderer)

	parts := []string{fmt.Sprintf("step %d/%d", i+1, total)}
	if step.Pivot != nil {
		parts = append(parts, st.pivot.Render(fmt.Sprintf("pivot=%d", *step.Pivot)))
	}
	if len(step.Compared) > 0 {
		parts = append(parts, st.compared.Render(fmt.Sprintf("compared=%v", step.Compared)))
	}
	return strings.Join(parts, "  ")
}

// Summary is a one-line description of a completed sort.
func Summary(resp *api.SortResponse, opts Options) string {
	opts = opts.withDefaults()
	st := newStyles(opts.Renderer)

	values := make([]string, len(resp.Sorted))
	for i, v := range resp.Sorted {
		values[i] = formatValue(v)
	}
	return fmt.Sprintf("%s %s: %d elements, %d steps, sorted [%s]",
		st.done.Render("✓"), resp.Algorithm, len(resp.Sorted), len(resp.Steps), strings.Join(values, " "))
}

// PlayOptions controls an animated replay.
type PlayOptions struct {
	Options

	// Delay is the pause between frames. Zero prints all frames at once.
	Delay time.Duration

	// Clear redraws each frame in place with ANSI clear-screen sequences.
	Clear bool
}

const clearScreen = "\x1b[H\x1b[2J"

// Play writes every step of resp to w as a frame, followed by the final
// array and a summary. It stops early when ctx is cancelled.
func Play(ctx context.Context, w io.Writer, resp *api.SortResponse, opts PlayOptions) error {
	total := len(resp.Steps)
	for i, step := range resp.Steps {
		if opts.Clear {
			if _, err := io.WriteString(w, clearScreen); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", Header(i, total, step, opts.Options), Render(step, opts.Options)); err != nil {
			return err
		}
		if err := wait(ctx, opts.Delay); err != nil {
			return err
		}
	}

	if opts.Clear && total > 0 {
		if _, err := io.WriteString(w, clearScreen); err != nil {
			return err
		}
	}
	final := api.Step{Array: resp.Sorted, Compared: []int{}}
	_, err := fmt.Fprintf(w, "%s\n%s", Render(final, opts.Options), Summary(resp, opts.Options)+"\n")
	return err
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
