// Package tags reads and writes the ID3 fields the rest of the module
// cares about, by semantic name rather than frame ID.
package tags

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

const (
	Artist      = "artist"
	AlbumArtist = "album_artist"
	Album       = "album"
	Year        = "year"
	Title       = "title"
	Track       = "track"
	Disc        = "disc"

	TrackNumber = "track_number"
	DiscNumber  = "disc_number"
	TotalTracks = "total_tracks"
	TotalDiscs  = "total_discs"
)

// https://id3.org/id3v2.4.0-frames
var frameIDs = map[string]string{
	Artist:      "TPE1",
	AlbumArtist: "TPE2",
	Album:       "TALB",
	Year:        "TDRC",
	Title:       "TIT2",
	Track:       "TRCK",
	Disc:        "TPOS",
}

// BaseFields is the full set of frame-mapped fields, in write order.
var BaseFields = []string{Artist, AlbumArtist, Album, Year, Title, Track, Disc}

func FrameID(field string) string {
	id, ok := frameIDs[field]
	if !ok {
		panic(fmt.Sprintf("unknown field %q", field))
	}
	return id
}

// part selects which half of a slash encoded "position/total" value a
// field refers to.
type part int

const (
	whole part = iota
	position
	total
)

// resolve maps a semantic field name to its frame-mapped base field.
// track_number and disc_number address the left half of the underlying
// value, total_tracks and total_discs the right half.
func resolve(field string) (string, part) {
	switch {
	case strings.HasSuffix(field, "_number"):
		return strings.TrimSuffix(field, "_number"), position
	case strings.HasPrefix(field, "total_"):
		return strings.TrimSuffix(strings.TrimPrefix(field, "total_"), "s"), total
	}
	return field, whole
}

// splitPart picks a half out of a "position/total" value. A value with
// no slash is taken to be a bare position, so a total query on it comes
// back empty.
func splitPart(raw string, p part) string {
	if p == whole || raw == "" {
		return raw
	}
	if strings.Count(raw, "/") != 1 {
		if p == total {
			return ""
		}
		return raw
	}
	pos, tot, _ := strings.Cut(raw, "/")
	if p == total {
		return tot
	}
	return pos
}

func CanRead(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".mp3"
}

type File struct {
	path string
	tag  *id3v2.Tag
}

// Read opens the ID3v2 container at path. Files with no existing tag
// header parse to an empty container, every field reads "".
func Read(path string) (*File, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return &File{path: path, tag: tag}, nil
}

func (f *File) Path() string { return f.path }

// Read returns the value for a semantic field, decoding composite
// position/total fields. Unknown fields panic.
func (f *File) Read(field string) string {
	base, p := resolve(field)
	raw := f.tag.GetTextFrame(FrameID(base)).Text
	return splitPart(raw, p)
}

func (f *File) Write(field, value string) {
	f.tag.AddTextFrame(FrameID(field), id3v2.EncodingUTF8, value)
}

func (f *File) ClearAll() {
	f.tag.DeleteAllFrames()
}

// Save persists the container as ID3v2.4 with UTF-8 text encoding, then
// strips any trailing ID3v1 and APEv2 containers from the file.
func (f *File) Save() error {
	f.tag.SetVersion(4)
	f.tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	if err := f.tag.Save(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := StripTrailing(f.path); err != nil {
		return fmt.Errorf("strip trailing tags: %w", err)
	}
	return nil
}

func (f *File) Close() error {
	return f.tag.Close()
}
