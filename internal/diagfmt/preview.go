package diagfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"gradelint/internal/problem"
	"gradelint/internal/source"
)

const tabWidth = 4

type previewLine struct {
	num  uint32
	text string
}

type preview struct {
	lines  []previewLine
	focus  int // индекс строки с кареткой
	pad    int
	marker int
}

// buildPreview collects the lines around pos and the caret geometry for its
// first line. Files without content produce no preview.
func buildPreview(fs *source.FileSet, pos problem.CodePosition, context int8) (preview, bool) {
	if fs == nil || !pos.IsValid() {
		return preview{}, false
	}
	f, ok := fs.GetByPath(pos.Path)
	if !ok || !f.HasContent() {
		return preview{}, false
	}
	total := lineCount(f)
	if pos.StartLine > total {
		return preview{}, false
	}

	ctx := uint32(max(context, 0)) //nolint:gosec // clamped above
	first := uint32(1)
	if pos.StartLine > ctx {
		first = pos.StartLine - ctx
	}
	last := min(pos.StartLine+ctx, total)

	pv := preview{}
	for n := first; n <= last; n++ {
		if n == pos.StartLine {
			pv.focus = len(pv.lines)
		}
		pv.lines = append(pv.lines, previewLine{num: n, text: f.GetLine(n)})
	}

	runes := []rune(pv.lines[pv.focus].text)
	start := clampCol(pos.StartColumn, len(runes))
	end := len(runes)
	if pos.EndLine == pos.StartLine && pos.EndColumn >= pos.StartColumn {
		end = clampCol(pos.EndColumn+1, len(runes))
	}
	pv.pad = displayWidth(string(runes[:start]))
	pv.marker = max(displayWidth(string(runes[start:max(end, start)])), 1)
	return pv, true
}

// clampCol turns a 1-based column into a rune offset within n runes.
func clampCol(col uint32, n int) int {
	if col == 0 {
		return 0
	}
	return min(int(col)-1, n)
}

func lineCount(f *source.File) uint32 {
	n := uint32(len(f.LineIdx)) + 1 //nolint:gosec // checked in Add
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] == '\n' {
		n--
	}
	return n
}

// displayWidth measures s in terminal cells with tabs expanded.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r == '\t' {
			w += tabWidth
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func caret(width int) string {
	return "^" + strings.Repeat("~", max(width-1, 0))
}
