package authoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populatedDraft(t *testing.T) CourseDraft {
	t.Helper()
	d := validDraft(t).
		WithID("course-42").
		SetDuration("6 weeks").
		SetActive(true).
		SetKeyTopics([]string{"goroutines", "channels"}).
		SetProfileImage(NewImageRef("/course-assets/profile.png")).
		SetThumbnail(NewImageRef("/course-assets/thumb.png")).
		AddLearningPoint(LearningPoint{Title: "Concurrency", Details: "CSP style"})

	var err error
	d, err = d.SetPriceMode("Paid")
	require.NoError(t, err)
	d, err = d.SetPrice("49.99")
	require.NoError(t, err)

	d, _ = d.AddBlockText(0)
	d, _ = d.SetBlockText(0, "A practical course.")
	d, _ = d.AddDescriptionBlock()
	d, _ = d.SetBlockHeadline(1, "Highlights")
	d, _ = d.SetBlockPoints(1, "• Fast • Simple")

	for i := 0; i < 2; i++ {
		var key string
		d, key = d.AddModule()
		d, err = d.SetModuleTitle(key, "Module "+key)
		require.NoError(t, err)
		d, _ = d.AddLesson(key)
		d, err = d.SetLessonField(key, 0, LessonTitle, "Intro")
		require.NoError(t, err)
		d, _ = d.SetLessonField(key, 0, LessonVideoURL, "https://video.example/"+key)
		d, _ = d.SetLessonField(key, 0, LessonDescription, "first lesson")

		e, err := OpenQuizEditor(d, ModuleQuizTarget(key))
		require.NoError(t, err)
		e, _ = e.SetPrompt(0, "Question for "+key)
		e, _ = e.SetOption(0, 0, "yes")
		e, _ = e.SetOption(0, 1, "no")
		e, _ = e.SetCorrectAnswer(0, AnswerA)
		d, err = e.Save(d)
		require.NoError(t, err)
	}

	e, _ := OpenQuizEditor(d, FinalExamTarget())
	e, _ = e.SetPrompt(9, "Final?")
	e, _ = e.SetOption(9, 3, "D")
	e, _ = e.SetCorrectAnswer(9, AnswerD)
	d, err = e.Save(d)
	require.NoError(t, err)
	return d
}

func TestRecordRoundTrip(t *testing.T) {
	d := populatedDraft(t)
	require.Empty(t, Validate(d, testCategories))

	back, err := FromRecord(d.ID(), d.Record())
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestRecordRoundTripThroughJSON(t *testing.T) {
	d := populatedDraft(t)

	raw, err := json.Marshal(d.Record())
	require.NoError(t, err)
	var rec CourseRecord
	require.NoError(t, json.Unmarshal(raw, &rec))

	back, err := FromRecord(d.ID(), rec)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestRecordWireShape(t *testing.T) {
	d := populatedDraft(t)
	raw, err := json.Marshal(d.Record())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "49.99", doc["price"])
	assert.Equal(t, "Go in Practice", doc["courseTitle"])
	assert.Equal(t, "programming", doc["categories"])

	modules := doc["modules"].(map[string]any)
	assert.Contains(t, modules, "module1")
	assert.Contains(t, modules, "module2")
	m1 := modules["module1"].(map[string]any)
	lesson := m1["lessons"].([]any)[0].(map[string]any)
	assert.Equal(t, "https://video.example/module1", lesson["videoUrl"])

	questions := m1["quiz"].(map[string]any)["questions"].([]any)
	require.Len(t, questions, ModuleQuizLength)
	q0 := questions[0].(map[string]any)
	assert.Equal(t, "A", q0["correctAnswer"])
	assert.Len(t, q0["options"], OptionCount)
	assert.Equal(t, "", questions[1].(map[string]any)["correctAnswer"])

	exam := doc["finalExam"].(map[string]any)["questions"].([]any)
	assert.Len(t, exam, FinalExamLength)

	blocks := doc["description"].([]any)
	first := blocks[0].(map[string]any)
	assert.NotContains(t, first, "point")
	second := blocks[1].(map[string]any)
	assert.NotContains(t, second, "text")
	assert.Equal(t, []any{"Fast", "Simple"}, second["point"])
}

func TestFreePriceSentinel(t *testing.T) {
	d := NewDraft()
	assert.Equal(t, "Free", d.Record().Price)

	back, err := FromRecord("x", CourseRecord{Price: "Free"})
	require.NoError(t, err)
	assert.Equal(t, PriceFree, back.Metadata().PriceMode)

	assert.Equal(t, "10.0", FormatPrice(PricePaid, " 10.0 "))
	assert.Equal(t, "12.50", FormatPrice(PricePaid, "12.50"))
	assert.Equal(t, "Free", FormatPrice(PriceFree, "12.50"))
}

func TestPaidPriceKeepsTrailingZeros(t *testing.T) {
	d := populatedDraft(t)
	d, err := d.SetPrice(" 10.50 ")
	require.NoError(t, err)
	require.Empty(t, Validate(d, testCategories))
	assert.Equal(t, "10.50", d.Record().Price)

	back, err := FromRecord(d.ID(), d.Record())
	require.NoError(t, err)
	assert.Equal(t, "10.50", back.Metadata().Price)
	assert.Equal(t, d, back)
}

func TestRoundTripAfterRemovingLastModule(t *testing.T) {
	d := populatedDraft(t)
	d, err := d.RemoveModule("module2")
	require.NoError(t, err)
	assert.Equal(t, 2, d.Record().ModuleSeq)

	back, err := FromRecord(d.ID(), d.Record())
	require.NoError(t, err)
	assert.Equal(t, d, back)

	_, live := d.AddModule()
	_, reloaded := back.AddModule()
	assert.Equal(t, "module3", live)
	assert.Equal(t, live, reloaded)
}

func TestHydratedSeqNeverBelowExistingKeys(t *testing.T) {
	back, err := FromRecord("x", CourseRecord{
		Price:     "Free",
		ModuleSeq: 1,
		Modules:   map[string]ModuleRecord{"module4": {Title: "Fourth"}},
	})
	require.NoError(t, err)
	_, key := back.AddModule()
	assert.Equal(t, "module5", key)
}

func TestHydrationNormalizes(t *testing.T) {
	rec := CourseRecord{
		Price: "15",
		Modules: map[string]ModuleRecord{
			"module3": {Title: "Third", Quiz: QuizRecord{Questions: []Question{{Prompt: "only", CorrectAnswer: "z"}}}},
			"module1": {Title: "First"},
		},
		FinalExam: QuizRecord{Questions: make([]Question, 12)},
	}
	d, err := FromRecord("c1", rec)
	require.NoError(t, err)

	assert.Equal(t, 1, d.Description().Len())
	assert.Equal(t, []string{"module1", "module3"}, d.Modules().Keys())
	assert.Equal(t, FinalExamLength, d.FinalExam().Len())

	m3, _ := d.Modules().Get("module3")
	assert.Equal(t, ModuleQuizLength, m3.Quiz.Len())
	q, _ := m3.Quiz.Question(0)
	assert.Equal(t, AnswerNone, q.CorrectAnswer)
	assert.True(t, m3.Expanded)

	d, key := d.AddModule()
	assert.Equal(t, "module4", key)
	assert.Equal(t, PricePaid, d.Metadata().PriceMode)
}

func TestHydrationRejectsBadModuleKeys(t *testing.T) {
	_, err := FromRecord("c1", CourseRecord{Modules: map[string]ModuleRecord{"intro": {}}})
	assert.ErrorIs(t, err, ErrInvalidModuleKey)

	_, err = FromRecord("c1", CourseRecord{Level: "Expert"})
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestDraftSessionJSONRoundTrip(t *testing.T) {
	d := populatedDraft(t)
	d = d.SetProfileImage(d.ProfileImage().WithPending(PendingAsset{
		Path: "/tmp/staging/a.png", FileName: "a.png", ContentType: "image/png", Size: 12,
	}))
	d, _ = d.ToggleModuleExpanded("module2")
	d, _ = d.RemoveModule("module1")

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	var back CourseDraft
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)

	_, key := back.AddModule()
	assert.Equal(t, "module3", key)
}
