// Package locale turns the display.locale setting into a date formatter.
package locale

import (
	"fmt"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ru"

	"github.com/aretw0/notes/pkg/core"
)

var translators = map[string]func() locales.Translator{
	"en": en.New,
	"ru": ru.New,
}

// Supported lists the accepted locale names, besides "".
func Supported() []string {
	return []string{"en", "ru"}
}

// Formatter returns a formatter printing the short date and short time of
// name. An empty name formats with layout (core.DefaultDateLayout if empty).
func Formatter(name, layout string) (core.DateFormatter, error) {
	if name == "" {
		return core.LayoutFormatter(layout), nil
	}
	newTranslator, ok := translators[name]
	if !ok {
		return nil, fmt.Errorf("unsupported locale %q", name)
	}
	tr := newTranslator()
	return func(t time.Time) string {
		t = t.Local()
		return tr.FmtDateShort(t) + " " + tr.FmtTimeShort(t)
	}, nil
}
