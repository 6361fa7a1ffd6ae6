package edit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taggtool/tagg/edit"
	"github.com/taggtool/tagg/release"
	"github.com/taggtool/tagg/tags"
)

// scripted re-prompts on validation failures like the terminal does,
// consuming queued answers until one passes.
type scripted struct {
	answers  []string
	confirms []bool

	labels   []string
	defaults []string
	rejected []string
}

func (s *scripted) Input(label, def string, suggest func(string) []string, validate func(string) error) (string, error) {
	s.labels = append(s.labels, label)
	s.defaults = append(s.defaults, def)
	for {
		if len(s.answers) == 0 {
			return "", edit.ErrInterrupted
		}
		answer := s.answers[0]
		s.answers = s.answers[1:]
		if err := validate(answer); err != nil {
			s.rejected = append(s.rejected, answer)
			continue
		}
		return answer, nil
	}
}

func (s *scripted) Confirm(message string) (bool, error) {
	if len(s.confirms) == 0 {
		return false, edit.ErrInterrupted
	}
	ok := s.confirms[0]
	s.confirms = s.confirms[1:]
	return ok, nil
}

func TestEditMerge(t *testing.T) {
	t.Parallel()

	set := map[string]string{
		tags.Title:       "Old Title",
		tags.TrackNumber: "1",
		tags.DiscNumber:  "1",
	}
	p := &scripted{answers: []string{"New Title", "2", "1"}}
	session := edit.NewSession(p, set)

	require.NoError(t, session.Edit(release.ItemFields, set))
	assert.Equal(t, map[string]string{
		tags.Title:       "New Title",
		tags.TrackNumber: "2",
		tags.DiscNumber:  "1",
	}, set)

	// prompts in field order, current values as defaults
	assert.Equal(t, []string{"TITLE", "TRACK NUMBER", "DISC NUMBER"}, p.labels)
	assert.Equal(t, []string{"Old Title", "1", "1"}, p.defaults)
}

func TestEditRevalidates(t *testing.T) {
	t.Parallel()

	set := map[string]string{tags.TrackNumber: "1"}
	p := &scripted{answers: []string{"12a", "", "12"}}
	session := edit.NewSession(p, set)

	require.NoError(t, session.Edit([]string{tags.TrackNumber}, set))
	assert.Equal(t, "12", set[tags.TrackNumber])
	assert.Equal(t, []string{"12a", ""}, p.rejected)
}

func TestEditInterrupted(t *testing.T) {
	t.Parallel()

	set := map[string]string{tags.Title: "x"}
	session := edit.NewSession(&scripted{}, set)

	err := session.Edit([]string{tags.Title}, set)
	assert.ErrorIs(t, err, edit.ErrInterrupted)
	assert.Equal(t, "x", set[tags.Title], "failed edit leaves the set untouched")
}

func TestValidators(t *testing.T) {
	t.Parallel()

	assert.Error(t, edit.Required(""))
	assert.NoError(t, edit.Required("x"))

	assert.Error(t, edit.Numeric(""))
	assert.Error(t, edit.Numeric("12a"))
	assert.Error(t, edit.Numeric("-1"))
	assert.NoError(t, edit.Numeric("12"))

	for _, field := range []string{tags.TrackNumber, tags.DiscNumber, tags.TotalTracks, tags.TotalDiscs} {
		assert.Error(t, edit.ValidatorFor(field)("12a"), field)
	}
	assert.NoError(t, edit.ValidatorFor(tags.Title)("12a"))
}

func TestSessionWordPool(t *testing.T) {
	t.Parallel()

	common := map[string]string{tags.Artist: "Steely Dan", tags.Album: "Aja"}
	item := map[string]string{tags.Title: "Deacon Blues"}

	var got []string
	p := &scripted{answers: []string{"ok"}}
	session := edit.NewSession(&suggestSpy{p, &got}, common, item)

	require.NoError(t, session.Edit([]string{tags.Artist}, common))
	assert.ElementsMatch(t, []string{"Deacon"}, got)
}

type suggestSpy struct {
	*scripted
	matches *[]string
}

func (s *suggestSpy) Input(label, def string, suggest func(string) []string, validate func(string) error) (string, error) {
	*s.matches = suggest("Dea")
	return s.scripted.Input(label, def, suggest, validate)
}
