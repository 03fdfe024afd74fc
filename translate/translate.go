// Package translate renders user-facing messages through golang.org/x/text
// catalogs. Messages without a catalog entry fall back to fmt-style formatting
// of the key itself.
package translate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Printer translates message keys for one language.
type Printer struct {
	p *message.Printer
}

// New returns a Printer for tag using the default catalog.
func New(tag language.Tag) Printer {
	return Printer{p: message.NewPrinter(tag)}
}

// Translate formats the catalog entry for format, or format itself when the
// catalog has none.
func (p Printer) Translate(format string, args ...any) string {
	return p.p.Sprintf(format, args...)
}

// SetString registers msg as the translation of key for tag in the default
// catalog. Printers created before the call see the new entry.
func SetString(tag language.Tag, key, msg string) error {
	return message.SetString(tag, key, msg)
}
