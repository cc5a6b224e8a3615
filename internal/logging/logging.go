// Package logging holds logrus helpers shared by the library packages.
package logging

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Discard returns a logger that drops every entry.
func Discard() log.FieldLogger {
	l := log.New()
	l.SetOutput(io.Discard)

	return l
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l log.FieldLogger) log.FieldLogger {
	if l == nil {
		return Discard()
	}

	return l
}
