package display

import (
	"fmt"
	"io"
)

const bannerArt = `     _ _               _
  __| | |___  ___  _ __| |_
 / _` + "`" + ` | / __|/ _ \| '__| __|
| (_| | \__ \ (_) | |  | |_
 \__,_|_|___/\___/|_|   \__|`

// PrintBanner writes the ASCII banner and version line to w.
func PrintBanner(w io.Writer, version string) {
	p := newPalette()
	_, _ = fmt.Fprintln(w, p.title.Render(bannerArt))
	_, _ = fmt.Fprintln(w, p.label.Render("downloads organizer v"+version))
}
