// Package card renders repository commit cards as SVG.
//
// # Layout
//
// A card is a fixed-width column laid out top to bottom:
//
//   - optional owner avatar, clipped to a circle, left of the header text
//   - header: repository full name and description (or "No description")
//   - optional stats row: stars, forks and open issues with compact counts
//   - a divider and the "Recent Commits" caption
//   - one 60px row per commit: timeline dot, short SHA, first message
//     line and author with an optional date
//
// The height is derived from the commit count so the card never clips:
//
//	height := card.Height(len(data.Commits), cfg.ShowStats)
//
// # Usage
//
//	cfg, err := config.Normalize(r.URL.Query())
//	if err != nil {
//	    return card.RenderError(errors.UserMessage(err))
//	}
//	svg := card.Render(data, cfg)
//
// [RenderError] produces a small standalone card used for every failure.
//
// Rendering is pure: no I/O, no shared state, safe for concurrent use.
package card
