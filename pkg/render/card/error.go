package card

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/commitcard/pkg/render/text"
)

const (
	errorWidth  = 400
	errorHeight = 120
	errorBg     = "0d1117"
	errorColor  = "f85149"
	errorFont   = `'JetBrains Mono', monospace`
)

// RenderError produces a fixed-size card showing msg. It is used for every
// failure so that embedders always receive a valid image.
func RenderError(msg string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		errorWidth, errorHeight, errorWidth, errorHeight)
	fmt.Fprintf(&buf, `  <rect width="%d" height="%d" fill="#%s" rx="10"/>`+"\n", errorWidth, errorHeight, errorBg)
	fmt.Fprintf(&buf, `  <rect x="0.5" y="0.5" width="%d" height="%d" fill="none" stroke="#%s" rx="10" stroke-width="1"/>`+"\n",
		errorWidth-1, errorHeight-1, errorColor)
	fmt.Fprintf(&buf, `  <text x="200" y="50" fill="#%s" font-family="%s" font-size="14" text-anchor="middle">⚠️ Error</text>`+"\n",
		errorColor, errorFont)
	fmt.Fprintf(&buf, `  <text x="200" y="75" fill="#%s" font-family="%s" font-size="12" text-anchor="middle">%s</text>`+"\n",
		errorColor, errorFont, text.EscapeXML(msg))
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
