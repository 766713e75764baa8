package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/notes/pkg/core"
)

// listing is the machine-readable form of a view.
type listing struct {
	Search string      `json:"search,omitempty" yaml:"search,omitempty"`
	Sort   string      `json:"sort" yaml:"sort"`
	Total  int         `json:"total" yaml:"total"`
	Notes  []core.Note `json:"notes" yaml:"notes"`
}

// newListing returns the notes of v in display order.
func newListing(v core.View, all []core.Note) listing {
	byID := make(map[string]core.Note, len(all))
	for _, n := range all {
		byID[n.ID] = n
	}
	l := listing{
		Search: v.Query.Search,
		Sort:   string(v.Query.Sort),
		Total:  v.Total,
		Notes:  make([]core.Note, 0, len(v.Cards)),
	}
	for _, c := range v.Cards {
		if n, ok := byID[c.ID]; ok {
			l.Notes = append(l.Notes, n)
		}
	}
	return l
}

// encode writes v as json or yaml.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// printView writes the cards of v as plain text.
func printView(w io.Writer, v core.View) {
	if msg := v.Message(); msg != "" {
		fmt.Fprintln(w, msg)
		return
	}

	dim := color.New(color.Faint)
	for _, c := range v.Cards {
		var glyphs []string
		for _, ctl := range c.Controls {
			if ctl.Kind == core.ActionTogglePin || ctl.Kind == core.ActionTogglePriority {
				glyphs = append(glyphs, ctl.Label)
			}
		}
		fmt.Fprintf(w, "%s %s  %s\n", strings.Join(glyphs, " "), c.Title, dim.Sprintf("[%s · %s]", c.ID, c.DateLabel))
		for line := range strings.SplitSeq(c.Text, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}

func success(format string, args ...any) {
	color.Green(format, args...)
}
