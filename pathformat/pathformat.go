// Package pathformat renders destination paths for copied tracks from a
// go templated format string below a destination root.
package pathformat

import (
	"fmt"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"github.com/taggtool/tagg/fileutil"
)

// Default lays albums out as "Artist/Year - Album/Track - Title.mp3",
// with a "Disc-" stem prefix for multi disc releases.
const Default = `{{ .Artist }}/{{ .Year }} - {{ .Album }}/{{ if .MultiDisc }}{{ .Disc }}-{{ end }}{{ .Track }} - {{ .Title }}{{ .Ext }}`

type Format struct {
	root string
	tmpl *texttemplate.Template
}

func New(root, format string) (*Format, error) {
	if root == "" {
		return nil, fmt.Errorf("empty root")
	}
	if format == "" {
		return nil, fmt.Errorf("empty format")
	}
	tmpl, err := texttemplate.
		New("template").
		Funcs(funcMap).
		Parse(format)
	if err != nil {
		return nil, fmt.Errorf("parse format: %w", err)
	}
	return &Format{root: root, tmpl: tmpl}, nil
}

func (f *Format) Root() string { return f.root }

type Data struct {
	Artist, Album, Year string
	Disc, Track, Title  string
	Ext                 string
	MultiDisc           bool
}

// Execute renders the path for one track under the root. Tag values are
// sanitised per component before templating, so a stray separator in a
// title can't change the directory layout.
func (f *Format) Execute(d Data) (string, error) {
	d.Artist = fileutil.SafePath(d.Artist)
	d.Album = fileutil.SafePath(d.Album)
	d.Year = fileutil.SafePath(d.Year)
	d.Disc = fileutil.SafePath(d.Disc)
	d.Track = fileutil.SafePath(d.Track)
	d.Title = fileutil.SafePath(d.Title)

	var buff strings.Builder
	if err := f.tmpl.Execute(&buff, d); err != nil {
		return "", fmt.Errorf("create path: %w", err)
	}
	return filepath.Join(f.root, filepath.FromSlash(buff.String())), nil
}

var funcMap = texttemplate.FuncMap{
	"join": func(delim string, items []string) string { return strings.Join(items, delim) },
	"pad0": func(amount, n int) string { return fmt.Sprintf("%0*d", amount, n) },
}
