package render

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"mages-tower/assets"
)

const readmeFooter = "? or Esc close   ↑/↓ scroll"

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// readmeCache holds the rendered readme for one width.
type readmeCache struct {
	width int
	lines []string
}

// RenderReadme formats the embedded readme for a terminal of the given
// width. It falls back to the raw markdown if rendering fails.
func RenderReadme(width int) []string {
	out := assets.Readme
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.NoTTYStyle),
		glamour.WithWordWrap(max(20, width)),
	)
	if err == nil {
		if md, err := tr.Render(assets.Readme); err == nil {
			out = md
		}
	}
	out = ansiEscape.ReplaceAllString(out, "")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func (r *Renderer) readmeLines(width int) []string {
	if r.readme.lines == nil || r.readme.width != width {
		r.readme = readmeCache{width: width, lines: RenderReadme(width)}
	}
	return r.readme.lines
}

// drawReadme shows the help page full screen.
func (r *Renderer) drawReadme(scroll int) {
	w, h := r.screen.Size()
	lines := r.readmeLines(w - 2)
	rows := h - 2
	r.readmeMax = max(0, len(lines)-rows)
	scroll = min(max(scroll, 0), r.readmeMax)

	r.drawHLine(0, 0, w, styleRule)
	r.putStr(2, 0, w, " "+IconTower+" Game Mechanics ", styleTitle)
	for i := 0; i < rows && scroll+i < len(lines); i++ {
		r.putStr(1, 1+i, w, lines[scroll+i], styleBase)
	}
	r.putStr(0, h-1, w, truncate(readmeFooter, w), styleDim)
}
