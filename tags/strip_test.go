package tags

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripTrailingID3v1(t *testing.T) {
	t.Parallel()

	payload := []byte("audio bytes")
	path := writeFile(t, append(payload, id3v1Tag()...))

	require.NoError(t, StripTrailing(path))
	assertContents(t, path, payload)
}

func TestStripTrailingAPE(t *testing.T) {
	t.Parallel()

	payload := []byte("audio bytes")
	path := writeFile(t, append(payload, apeTag(false)...))

	require.NoError(t, StripTrailing(path))
	assertContents(t, path, payload)
}

func TestStripTrailingAPEWithHeader(t *testing.T) {
	t.Parallel()

	payload := []byte("audio bytes")
	path := writeFile(t, append(payload, apeTag(true)...))

	require.NoError(t, StripTrailing(path))
	assertContents(t, path, payload)
}

func TestStripTrailingStacked(t *testing.T) {
	t.Parallel()

	// the usual layout, APEv2 before a final ID3v1 block
	payload := []byte("audio bytes")
	data := append([]byte{}, payload...)
	data = append(data, apeTag(true)...)
	data = append(data, id3v1Tag()...)
	path := writeFile(t, data)

	require.NoError(t, StripTrailing(path))
	assertContents(t, path, payload)
}

func TestStripTrailingNothingToDo(t *testing.T) {
	t.Parallel()

	payload := []byte("audio bytes")
	path := writeFile(t, payload)

	require.NoError(t, StripTrailing(path))
	assertContents(t, path, payload)

	short := writeFile(t, []byte("x"))
	require.NoError(t, StripTrailing(short))
	assertContents(t, short, []byte("x"))
}

func id3v1Tag() []byte {
	tag := make([]byte, id3v1Size)
	copy(tag, "TAG")
	copy(tag[3:], "Some Title")
	return tag
}

// apeTag builds an itemless APEv2 tag, optionally with a leading header.
func apeTag(withHeader bool) []byte {
	block := func(flags uint32) []byte {
		b := make([]byte, apeFooterSize)
		copy(b, "APETAGEX")
		binary.LittleEndian.PutUint32(b[8:12], 2000)
		binary.LittleEndian.PutUint32(b[12:16], apeFooterSize)
		binary.LittleEndian.PutUint32(b[16:20], 0)
		binary.LittleEndian.PutUint32(b[20:24], flags)
		return b
	}
	if !withHeader {
		return block(0)
	}
	return append(block(apeHasHeader|1<<29), block(apeHasHeader)...)
}

func writeFile(t *testing.T, data []byte) string {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "*.mp3")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func assertContents(t *testing.T, path string, want []byte) {
	t.Helper()

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
