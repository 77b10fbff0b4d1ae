package render

import (
	"sort"
	"strings"

	"github.com/charmbracelet/glamour/styles"
)

// Markdown renders markdown content for terminal display.
func Markdown(content string, opts Options) (string, error) {
	tr, err := shared.get(opts)
	if err != nil {
		return "", err
	}
	defer shared.put(opts, tr)

	return tr.Render(content)
}

// Reply renders a model reply, falling back to the raw text when the
// renderer cannot be built (for example an unreadable style file).
func Reply(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

// MarkdownStyles lists the built-in glamour style names, sorted.
func MarkdownStyles() []string {
	names := make([]string, 0, len(styles.DefaultStyles)+1)
	for name := range styles.DefaultStyles {
		names = append(names, name)
	}
	names = append(names, styles.AutoStyle)
	sort.Strings(names)
	return names
}
