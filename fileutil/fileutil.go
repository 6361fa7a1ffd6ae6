package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rainycape/unidecode"
)

var safePathReplacer = strings.NewReplacer(
	"\x00", "",
	":", "",
	string(filepath.Separator), " ",
)

// SafePath renders a tag value usable as a single path component.
// Separators become spaces, runs of whitespace collapse, and non ASCII
// text is transliterated.
func SafePath(path string) string {
	path = unidecode.Unidecode(path)
	path = safePathReplacer.Replace(path)
	path = strings.Join(strings.Fields(path), " ")
	return path
}

// Copy copies src's bytes to dest. dest must not exist yet.
func Copy(src, dest string) error {
	srcf, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open src: %w", err)
	}
	defer srcf.Close()

	destf, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
	if err != nil {
		return fmt.Errorf("open dest: %w", err)
	}
	if _, err := io.Copy(destf, srcf); err != nil {
		return errors.Join(fmt.Errorf("copy: %w", err), destf.Close())
	}
	if err := destf.Close(); err != nil {
		return fmt.Errorf("close dest: %w", err)
	}
	return nil
}
