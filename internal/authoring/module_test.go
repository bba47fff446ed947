package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addModules(m ModuleMap, n int) ModuleMap {
	for i := 0; i < n; i++ {
		m, _ = m.AddModule()
	}
	return m
}

func TestAddModuleGeneratesSequentialKeys(t *testing.T) {
	m := addModules(NewModuleMap(), 4)
	assert.Equal(t, []string{"module1", "module2", "module3", "module4"}, m.Keys())

	mod, ok := m.Get("module1")
	require.True(t, ok)
	assert.True(t, mod.Expanded)
	assert.Equal(t, "", mod.Title)
	assert.Equal(t, 0, mod.Lessons.Len())
	assert.Equal(t, ModuleQuizLength, mod.Quiz.Len())
	assert.False(t, mod.Quiz.HasContent())
}

func TestRemovedKeyIsNotReused(t *testing.T) {
	for _, n := range []int{2, 3, 5} {
		m := addModules(NewModuleMap(), n)
		m, err := m.RemoveModule("module2")
		require.NoError(t, err)

		m, key := m.AddModule()
		assert.Equal(t, moduleKey(n+1), key)
		_, ok := m.Get("module2")
		assert.False(t, ok)
		assert.Equal(t, n, m.Len())
	}
}

func TestRemoveModuleKeepsGaps(t *testing.T) {
	m := addModules(NewModuleMap(), 3)
	m, err := m.RemoveModule("module2")
	require.NoError(t, err)
	assert.Equal(t, []string{"module1", "module3"}, m.Keys())

	_, err = m.RemoveModule("module2")
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestKeysSortByNumericSuffix(t *testing.T) {
	m := addModules(NewModuleMap(), 11)
	keys := m.Keys()
	assert.Equal(t, "module9", keys[8])
	assert.Equal(t, "module10", keys[9])
	assert.Equal(t, "module11", keys[10])
}

func TestSetTitleAndToggle(t *testing.T) {
	m := addModules(NewModuleMap(), 1)
	prev := m

	m, err := m.SetTitle("module1", "Basics")
	require.NoError(t, err)
	m, err = m.ToggleExpanded("module1")
	require.NoError(t, err)

	mod, _ := m.Get("module1")
	assert.Equal(t, "Basics", mod.Title)
	assert.False(t, mod.Expanded)

	old, _ := prev.Get("module1")
	assert.Equal(t, "", old.Title)
	assert.True(t, old.Expanded)

	_, err = m.SetTitle("module9", "x")
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestModuleKeySuffix(t *testing.T) {
	n, err := ModuleKeySuffix("module12")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, bad := range []string{"module", "mod1", "module1a", "Module1", ""} {
		_, err := ModuleKeySuffix(bad)
		assert.ErrorIs(t, err, ErrInvalidModuleKey, bad)
	}
}

func TestHasQuizContent(t *testing.T) {
	cases := []struct {
		name string
		edit func(QuizQuestionSet) (QuizQuestionSet, error)
	}{
		{"prompt", func(q QuizQuestionSet) (QuizQuestionSet, error) { return q.SetPrompt(3, "Why?") }},
		{"option", func(q QuizQuestionSet) (QuizQuestionSet, error) { return q.SetOption(0, 2, "Maybe") }},
		{"answer", func(q QuizQuestionSet) (QuizQuestionSet, error) { return q.SetCorrectAnswer(4, AnswerB) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, key := NewDraft().AddModule()
			require.False(t, d.HasModuleQuizContent(key))

			mod, _ := d.Modules().Get(key)
			quiz, err := tc.edit(mod.Quiz)
			require.NoError(t, err)
			d, err = d.setModuleQuiz(key, quiz)
			require.NoError(t, err)

			assert.True(t, d.HasModuleQuizContent(key))
		})
	}
}

func TestBlankPromptIsNotContent(t *testing.T) {
	q, err := NewQuizQuestionSet(ModuleQuizLength).SetPrompt(0, "   ")
	require.NoError(t, err)
	assert.False(t, q.HasContent())
}
