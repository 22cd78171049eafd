// Package pager renders the catalog as a table and shows it in ov.
package pager

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/noborus/ov/oviewer"

	"destpick/internal/domain"
)

const maxNameWidth = 32

// Render lays dests out as aligned columns: name, country, route
func Render(dests []domain.Destination, routePrefix string) string {
	nameWidth := len("NAME")
	countryWidth := len("COUNTRY")
	for _, d := range dests {
		nameWidth = max(nameWidth, min(runewidth.StringWidth(d.Name), maxNameWidth))
		countryWidth = max(countryWidth, runewidth.StringWidth(d.Country))
	}

	var b strings.Builder
	writeRow(&b, "NAME", nameWidth, "COUNTRY", countryWidth, "ROUTE")
	for _, d := range dests {
		name := runewidth.Truncate(d.Name, maxNameWidth, "…")
		writeRow(&b, name, nameWidth, d.Country, countryWidth, domain.Route(routePrefix, d))
	}
	fmt.Fprintf(&b, "\n%d destinations\n", len(dests))
	return b.String()
}

func writeRow(b *strings.Builder, name string, nameWidth int, country string, countryWidth int, route string) {
	b.WriteString(runewidth.FillRight(name, nameWidth))
	b.WriteString("  ")
	b.WriteString(runewidth.FillRight(country, countryWidth))
	b.WriteString("  ")
	b.WriteString(route)
	b.WriteString("\n")
}

// Show opens content in the ov pager and blocks until the user quits it
func Show(content io.Reader) error {
	root, err := oviewer.NewRoot(content)
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
