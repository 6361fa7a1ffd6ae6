// Package tagg copies a single album's MP3s into a tag derived layout
// and rewrites their containers from the reconciled tag sets.
package tagg

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"go.senan.xyz/natcmp"

	"github.com/taggtool/tagg/fileutil"
	"github.com/taggtool/tagg/pathformat"
	"github.com/taggtool/tagg/release"
	"github.com/taggtool/tagg/tags"
)

var (
	ErrNoTracks   = errors.New("no tracks in dir")
	ErrDestExists = errors.New("destination already exists")
)

// FindFiles lists the MP3 files directly under dir, in natural order so
// "2.mp3" sorts before "10.mp3".
func FindFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !tags.CanRead(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	slices.SortFunc(paths, natcmp.Compare)

	if len(paths) == 0 {
		return nil, ErrNoTracks
	}
	return paths, nil
}

func ReadFiles(paths []string) ([]*tags.File, error) {
	var files []*tags.File
	for _, path := range paths {
		file, err := tags.Read(path)
		if err != nil {
			var closeErrs []error
			for _, f := range files {
				closeErrs = append(closeErrs, f.Close())
			}
			return nil, errors.Join(fmt.Errorf("read track %s: %w", path, err), errors.Join(closeErrs...))
		}
		files = append(files, file)
	}
	return files, nil
}

// CopyFiles lays the album out under the format root and copies each
// track's bytes unchanged, returning the items re-keyed by destination
// path. The root must not exist yet. Nothing is cleaned up on failure.
func CopyFiles(pf *pathformat.Format, common map[string]string, items []release.Item) ([]release.Item, error) {
	totalDiscs, err := strconv.Atoi(common[tags.TotalDiscs])
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", tags.TotalDiscs, err)
	}

	if _, err := os.Stat(pf.Root()); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDestExists, pf.Root())
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat dest: %w", err)
	}

	copied := make([]release.Item, 0, len(items))
	for _, item := range items {
		dest, err := pf.Execute(pathformat.Data{
			Artist:    common[tags.Artist],
			Album:     common[tags.Album],
			Year:      common[tags.Year],
			Disc:      item.Tags[tags.DiscNumber],
			Track:     item.Tags[tags.TrackNumber],
			Title:     item.Tags[tags.Title],
			Ext:       filepath.Ext(item.Path),
			MultiDisc: totalDiscs > 1,
		})
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, fmt.Errorf("create dest dir: %w", err)
		}
		slog.Debug("copying track", "src", item.Path, "dest", dest)
		if err := fileutil.Copy(item.Path, dest); err != nil {
			return nil, fmt.Errorf("copy %s: %w", item.Path, err)
		}
		copied = append(copied, release.Item{Path: dest, Tags: item.Tags})
	}
	return copied, nil
}

// WriteTrack rewrites one copied file's tags from scratch. Item fields
// come from the track, everything else from the album set, track and
// disc joined as "position/total". The result is an ID3v2.4 container
// only, any ID3v1 or APEv2 containers are dropped.
func WriteTrack(common map[string]string, item release.Item) error {
	file, err := tags.Read(item.Path)
	if err != nil {
		return err
	}
	defer file.Close()

	file.ClearAll()
	for _, field := range tags.BaseFields {
		switch field {
		case tags.Track:
			file.Write(field, item.Tags[tags.TrackNumber]+"/"+common[tags.TotalTracks])
		case tags.Disc:
			file.Write(field, item.Tags[tags.DiscNumber]+"/"+common[tags.TotalDiscs])
		default:
			value, ok := item.Tags[field]
			if !ok {
				value = common[field]
			}
			file.Write(field, value)
		}
	}
	return file.Save()
}
