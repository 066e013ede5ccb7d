// internal/mapkit/icon.go
package mapkit

import (
	"fmt"
	"net/url"
)

const (
	iconWidth  = 170
	iconHeight = 55

	// Names longer than this are cut and suffixed with an ellipsis so
	// the badge text never overflows the rounded rectangle.
	maxIconNameLen = 18
)

// MarkerIcon is a renderable icon descriptor for a map marker: inline
// image data plus the pixel size the map engine should scale it to.
type MarkerIcon struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Icon builds the badge icon for a business name: a rounded green
// rectangle with a recycle glyph and the (possibly truncated) name.
// It is a pure function and always succeeds.
func Icon(name string) MarkerIcon {
	shortName := name
	if runes := []rune(name); len(runes) > maxIconNameLen {
		shortName = string(runes[:maxIconNameLen]) + "…"
	}

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">
    <rect x="0" y="0" rx="28" ry="28" width="%d" height="%d"
          fill="#0B7832" stroke="#055022" stroke-width="2"/>
    <g transform="translate(10, 10)">
        <circle cx="17" cy="17" r="16" fill="white"/>
        <text x="17" y="24" text-anchor="middle"
              font-size="22" font-weight="bold"
              fill="#0B7832">&#9851;</text>
    </g>
    <text x="60" y="32" font-size="16" fill="white" font-weight="bold">%s</text>
</svg>`, iconWidth, iconHeight, iconWidth, iconHeight, escapeXML(shortName))

	return MarkerIcon{
		URL:    "data:image/svg+xml;charset=UTF-8," + encodeURIComponent(svg),
		Width:  iconWidth,
		Height: iconHeight,
	}
}

func escapeXML(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '&':
			out = append(out, []rune("&amp;")...)
		case '<':
			out = append(out, []rune("&lt;")...)
		case '>':
			out = append(out, []rune("&gt;")...)
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// encodeURIComponent mirrors the JS escaping rules for data URIs:
// url.QueryEscape encodes spaces as "+", which image consumers reject.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	out := make([]byte, 0, len(escaped))
	for i := 0; i < len(escaped); i++ {
		if escaped[i] == '+' {
			out = append(out, []byte("%20")...)
		} else {
			out = append(out, escaped[i])
		}
	}
	return string(out)
}
