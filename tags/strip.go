package tags

import (
	"encoding/binary"
	"fmt"
	"os"
)

const (
	id3v1Size     = 128
	apeFooterSize = 32

	// footer flag bit signalling the tag also carries a leading header
	apeHasHeader = 1 << 31
)

var (
	id3v1Magic = []byte("TAG")
	apeMagic   = []byte("APETAGEX")
)

// StripTrailing removes any ID3v1 and APEv2 containers from the end of
// the file at path. Both may be present at once, APEv2 usually sitting
// just before ID3v1, so containers are peeled off until none remain.
func StripTrailing(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	size := info.Size()
	for {
		trimmed, err := trailingTagSize(f, size)
		if err != nil {
			return err
		}
		if trimmed == 0 {
			break
		}
		size -= trimmed
	}

	if size == info.Size() {
		return nil
	}
	if err := f.Truncate(size); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return nil
}

// trailingTagSize reports the size of the ID3v1 or APEv2 container
// ending at offset size, or 0 if neither is present.
func trailingTagSize(f *os.File, size int64) (int64, error) {
	if n, err := id3v1At(f, size); n > 0 || err != nil {
		return n, err
	}
	return apeAt(f, size)
}

func id3v1At(f *os.File, size int64) (int64, error) {
	if size < id3v1Size {
		return 0, nil
	}
	head := make([]byte, len(id3v1Magic))
	if _, err := f.ReadAt(head, size-id3v1Size); err != nil {
		return 0, fmt.Errorf("read id3v1 header: %w", err)
	}
	if string(head) != string(id3v1Magic) {
		return 0, nil
	}
	return id3v1Size, nil
}

func apeAt(f *os.File, size int64) (int64, error) {
	if size < apeFooterSize {
		return 0, nil
	}
	footer := make([]byte, apeFooterSize)
	if _, err := f.ReadAt(footer, size-apeFooterSize); err != nil {
		return 0, fmt.Errorf("read ape footer: %w", err)
	}
	if string(footer[:len(apeMagic)]) != string(apeMagic) {
		return 0, nil
	}

	// tag size covers the items plus this footer, the optional header
	// is counted separately
	tagSize := int64(binary.LittleEndian.Uint32(footer[12:16]))
	flags := binary.LittleEndian.Uint32(footer[20:24])
	if flags&apeHasHeader != 0 {
		tagSize += apeFooterSize
	}
	if tagSize < apeFooterSize || tagSize > size {
		return 0, fmt.Errorf("ape tag size %d out of range", tagSize)
	}
	return tagSize, nil
}
