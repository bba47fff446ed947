package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLessonTwiceYieldsOneLesson(t *testing.T) {
	l := NewLessonList().AddLesson().AddLesson()
	assert.Equal(t, 1, l.Len())
}

func TestAddLessonAfterEdit(t *testing.T) {
	l := NewLessonList().AddLesson()
	l, err := l.SetField(0, LessonTitle, "Intro")
	require.NoError(t, err)

	l = l.AddLesson()
	assert.Equal(t, 2, l.Len())
	l = l.AddLesson()
	assert.Equal(t, 2, l.Len())
}

func TestSetFieldFillsMissingLessons(t *testing.T) {
	l, err := NewLessonList().SetField(2, LessonVideoURL, "https://v.example/3")
	require.NoError(t, err)

	require.Equal(t, 3, l.Len())
	assert.Equal(t, []Lesson{{}, {}, {VideoURL: "https://v.example/3"}}, l.Lessons())

	_, err = l.SetField(-1, LessonTitle, "x")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = l.SetField(0, LessonField("duration"), "x")
	assert.ErrorIs(t, err, ErrInvalidLessonKey)
}

func TestRemoveLesson(t *testing.T) {
	l := NewLessonList(Lesson{Title: "a"}, Lesson{Title: "b"}, Lesson{Title: "c"})
	next, err := l.RemoveLesson(1)
	require.NoError(t, err)

	assert.Equal(t, []Lesson{{Title: "a"}, {Title: "c"}}, next.Lessons())
	assert.Equal(t, 3, l.Len())

	_, err = next.RemoveLesson(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDraftLessonScenario(t *testing.T) {
	d, key := NewDraft().AddModule()
	d, err := d.AddLesson(key)
	require.NoError(t, err)
	d, err = d.SetLessonField(key, 0, LessonTitle, "Intro")
	require.NoError(t, err)

	mod, ok := d.Modules().Get(key)
	require.True(t, ok)
	assert.Equal(t, "Intro", mod.Lessons.Lessons()[0].Title)

	d, err = d.RemoveModule(key)
	require.NoError(t, err)
	_, ok = d.Modules().Get(key)
	assert.False(t, ok)
	assert.Equal(t, 0, d.Modules().Len())
}
