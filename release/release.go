// Package release splits a set of tracks into album level tags, agreed
// by majority across the set, and per track tags.
package release

import (
	"strconv"

	"github.com/araddon/dateparse"

	"github.com/taggtool/tagg/consensus"
	"github.com/taggtool/tagg/tags"
)

// CommonFields are elected once per album, ItemFields read per track.
// Iteration and edit order follow these slices.
var (
	CommonFields = []string{tags.Artist, tags.AlbumArtist, tags.Album, tags.Year, tags.TotalTracks, tags.TotalDiscs}
	ItemFields   = []string{tags.Title, tags.TrackNumber, tags.DiscNumber}
)

// Reader is the part of tags.File the builders need. Tests substitute
// in-memory stubs.
type Reader interface {
	Path() string
	Read(field string) string
}

// Item holds one track's own tags, keyed by its current file path.
type Item struct {
	Path string
	Tags map[string]string
}

// Common elects an album level value for each common field. Each track
// casts one vote per field, the most frequent value wins, ties go to
// the value seen first.
func Common(files []Reader) map[string]string {
	counter := consensus.New()
	for _, f := range files {
		for _, field := range CommonFields {
			counter.Add(field, f.Read(field))
		}
	}

	common := make(map[string]string, len(CommonFields))
	for field, v := range counter.All() {
		common[field] = v
	}
	common[tags.Year] = normYear(common[tags.Year])
	return common
}

// Items reads the per track fields for each file, preserving file order.
func Items(files []Reader) []Item {
	items := make([]Item, 0, len(files))
	for _, f := range files {
		item := Item{Path: f.Path(), Tags: make(map[string]string, len(ItemFields))}
		for _, field := range ItemFields {
			item.Tags[field] = f.Read(field)
		}
		items = append(items, item)
	}
	return items
}

// normYear reduces full date values, as often found in TDRC, to the
// four digit year. Values that don't parse as a date pass through.
func normYear(v string) string {
	t, err := dateparse.ParseAny(v)
	if err != nil || t.Year() <= 0 {
		return v
	}
	return strconv.Itoa(t.Year())
}
