package card

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/commitcard/pkg/config"
	"github.com/matzehuels/commitcard/pkg/fonts"
	"github.com/matzehuels/commitcard/pkg/model"
	"github.com/matzehuels/commitcard/pkg/render/text"
)

const (
	headerHeightStats   = 100.0
	headerHeightNoStats = 70.0
	commitHeight        = 60.0
	bottomPadding       = 40.0

	textOffsetAvatar   = 70
	textOffsetNoAvatar = 20

	titleY    = 38
	subtitleY = 56
	statsY    = 80

	sectionStartStats   = 110
	sectionStartNoStats = 75

	// Approximate advance of one message character at font-size 11.
	messageCharWidth  = 7
	messageSidePad    = 120
	descriptionMaxLen = 60

	noDescription = "No description"
	sectionTitle  = "Recent Commits"
)

// Height returns the card height for the given number of commit rows.
func Height(commits int, showStats bool) float64 {
	header := headerHeightNoStats
	if showStats {
		header = headerHeightStats
	}
	return header + float64(commits)*commitHeight + bottomPadding
}

// MessageWidth returns the maximum number of message characters that fit
// on a row of a card of the given width.
func MessageWidth(width int) int {
	return (width - messageSidePad) / messageCharWidth
}

// Render produces the SVG card for data under cfg. Every string that comes
// from GitHub is XML-escaped; colors and numbers are emitted verbatim since
// [config.Normalize] has already sanitized them.
func Render(data *model.RepoData, cfg config.Card) []byte {
	width := cfg.Width
	height := Height(len(data.Commits), cfg.ShowStats)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%.0f" viewBox="0 0 %d %.0f" fill="none">`+"\n",
		width, height, width, height)

	renderDefs(&buf, cfg)
	renderBackground(&buf, cfg, height)

	x := textOffsetNoAvatar
	if cfg.ShowAvatar {
		renderAvatar(&buf, data.Repo.Owner.AvatarURL, cfg)
		x = textOffsetAvatar
	}
	renderHeader(&buf, data.Repo, x)

	start := sectionStartNoStats
	if cfg.ShowStats {
		renderStats(&buf, data.Repo, x, cfg.ShowIcons)
		start = sectionStartStats
	}

	fmt.Fprintf(&buf, `  <line class="divider" x1="20" y1="%d" x2="%d" y2="%d"/>`+"\n", start-10, width-20, start-10)
	fmt.Fprintf(&buf, `  <text x="20" y="%d" class="title" font-size="12">%s</text>`+"\n", start+10, sectionTitle)

	maxLen := MessageWidth(width)
	for i, c := range data.Commits {
		y := float64(start+30) + float64(i)*commitHeight
		renderCommit(&buf, c, y, maxLen, i < len(data.Commits)-1, cfg.ShowDate)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, cfg config.Card) {
	c := cfg.Colors
	ff := cfg.FontFamily
	buf.WriteString("  <defs>\n    <style>\n")
	fmt.Fprintf(buf, "      @import url('%s');\n", text.EscapeXML(fonts.ImportURL))
	fmt.Fprintf(buf, "      .card-bg { fill: #%s; }\n", c.Background)
	fmt.Fprintf(buf, "      .card-border { stroke: #%s; stroke-width: %d; fill: none; }\n", c.Border, cfg.BorderWidth)
	fmt.Fprintf(buf, "      .title { fill: #%s; font-family: %s; font-weight: 700; }\n", c.Title, ff)
	fmt.Fprintf(buf, "      .subtitle { fill: #%s; font-family: %s; font-weight: 400; }\n", c.Subtext, ff)
	fmt.Fprintf(buf, "      .text { fill: #%s; font-family: %s; font-weight: 500; }\n", c.Text, ff)
	fmt.Fprintf(buf, "      .text-muted { fill: #%s; font-family: %s; font-weight: 400; }\n", c.Subtext, ff)
	fmt.Fprintf(buf, "      .sha { fill: #%s; font-family: %s; font-weight: 600; }\n", c.SHA, ff)
	fmt.Fprintf(buf, "      .accent { fill: #%s; }\n", c.Accent)
	fmt.Fprintf(buf, "      .icon { fill: #%s; }\n", c.Subtext)
	fmt.Fprintf(buf, "      .stat-value { fill: #%s; font-family: %s; font-weight: 700; }\n", c.Text, ff)
	fmt.Fprintf(buf, "      .stat-label { fill: #%s; font-family: %s; font-weight: 400; }\n", c.Subtext, ff)
	fmt.Fprintf(buf, "      .commit-line { stroke: #%s; stroke-width: 1; }\n", c.Border)
	fmt.Fprintf(buf, "      .commit-dot { fill: #%s; }\n", c.Accent)
	fmt.Fprintf(buf, "      .divider { stroke: #%s; stroke-width: 1; }\n", c.Border)
	buf.WriteString("    </style>\n")
	buf.WriteString(`    <clipPath id="avatarClip"><circle cx="35" cy="40" r="20"/></clipPath>` + "\n")
	buf.WriteString("  </defs>\n")
}

func renderBackground(buf *bytes.Buffer, cfg config.Card, height float64) {
	fmt.Fprintf(buf, `  <rect class="card-bg" width="%d" height="%.0f" rx="%d"/>`+"\n", cfg.Width, height, cfg.Radius)
	fmt.Fprintf(buf, `  <rect class="card-border" x="0.5" y="0.5" width="%d" height="%.0f" rx="%d"/>`+"\n",
		cfg.Width-1, height-1, cfg.Radius)
}

func renderAvatar(buf *bytes.Buffer, href string, cfg config.Card) {
	fmt.Fprintf(buf, `  <image href="%s" x="15" y="20" width="40" height="40" clip-path="url(#avatarClip)" preserveAspectRatio="xMidYMid slice"/>`+"\n",
		text.EscapeXML(href))
	fmt.Fprintf(buf, `  <circle cx="35" cy="40" r="20" stroke="#%s" stroke-width="2" fill="none"/>`+"\n", cfg.Colors.Border)
}

func renderHeader(buf *bytes.Buffer, repo model.Repository, x int) {
	desc := repo.Description
	if desc == "" {
		desc = noDescription
	}
	fmt.Fprintf(buf, `  <text x="%d" y="%d" class="title" font-size="16">%s</text>`+"\n",
		x, titleY, text.EscapeXML(repo.FullName))
	fmt.Fprintf(buf, `  <text x="%d" y="%d" class="subtitle" font-size="11">%s</text>`+"\n",
		x, subtitleY, text.EscapeXML(text.Truncate(desc, descriptionMaxLen)))
}

func renderStats(buf *bytes.Buffer, repo model.Repository, x int, icons bool) {
	stats := []struct {
		offset int
		icon   string
		value  int
	}{
		{0, starIconPath, repo.Stars},
		{70, forkIconPath, repo.Forks},
		{130, issueIconPath, repo.OpenIssues},
	}

	fmt.Fprintf(buf, `  <g transform="translate(%d, %d)">`+"\n", x, statsY)
	for _, s := range stats {
		fmt.Fprintf(buf, `    <g transform="translate(%d, 0)">`+"\n", s.offset)
		valueX := 0
		if icons {
			fmt.Fprintf(buf, `      <svg class="icon" width="14" height="14" viewBox="0 0 16 16" x="0" y="-11">%s</svg>`+"\n", s.icon)
			valueX = 18
		}
		fmt.Fprintf(buf, `      <text x="%d" y="0" class="stat-value" font-size="12">%s</text>`+"\n",
			valueX, text.CompactNumber(s.value))
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func renderCommit(buf *bytes.Buffer, c model.Commit, y float64, maxLen int, connect, showDate bool) {
	fmt.Fprintf(buf, `  <g transform="translate(20, %.0f)">`+"\n", y)
	buf.WriteString(`    <circle class="commit-dot" cx="8" cy="18" r="5"/>` + "\n")
	if connect {
		fmt.Fprintf(buf, `    <line class="commit-line" x1="8" y1="26" x2="8" y2="%.0f"/>`+"\n", commitHeight)
	}

	fmt.Fprintf(buf, `    <text x="25" y="14" class="sha" font-size="10">%s</text>`+"\n",
		text.EscapeXML(text.ShortSHA(c.SHA)))
	fmt.Fprintf(buf, `    <text x="25" y="30" class="text" font-size="11">%s</text>`+"\n",
		text.EscapeXML(text.Truncate(text.FirstLine(c.Message), maxLen)))

	byline := text.EscapeXML(c.Author)
	if showDate {
		byline += " · " + text.ShortDate(c.Date)
	}
	fmt.Fprintf(buf, `    <text x="25" y="45" class="text-muted" font-size="9">%s</text>`+"\n", byline)
	buf.WriteString("  </g>\n")
}
