package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = []Category{{Label: "Programming", Value: "programming"}}

func validDraft(t *testing.T) CourseDraft {
	t.Helper()
	d := NewDraft().
		SetTitle("Go in Practice").
		SetInstructor("R. Pike").
		SetLanguage("English").
		SetCategory("programming")
	d, err := d.SetLevel("Beginner")
	require.NoError(t, err)
	d, err = d.SetBlockHeadline(0, "What you will learn")
	require.NoError(t, err)
	return d
}

func fields(errs ValidationErrors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func TestValidDraftPasses(t *testing.T) {
	errs := Validate(validDraft(t), testCategories)
	assert.Empty(t, errs)
	assert.NoError(t, errs.Err())
}

func TestEmptyDraftReportsEveryRequiredField(t *testing.T) {
	errs := Validate(NewDraft(), testCategories)
	assert.Equal(t, []string{
		FieldTitle, FieldInstructor, FieldLevel, FieldLanguage, FieldCategory,
		"description[0].headline",
	}, fields(errs))
}

func TestViolationsAreReportedIndependently(t *testing.T) {
	d := validDraft(t).SetTitle("")
	d, err := d.SetPriceMode("Paid")
	require.NoError(t, err)
	d, err = d.SetPrice("0")
	require.NoError(t, err)

	errs := Validate(d, nil)
	assert.ElementsMatch(t, []string{FieldTitle, FieldPrice, FieldCategories}, fields(errs))
	assert.Len(t, errs, 3)
	assert.Error(t, errs.Err())
}

func TestPriceRules(t *testing.T) {
	cases := map[string]bool{
		"49.99": true,
		"1":     true,
		"0":     false,
		"-3":    false,
		"":      false,
		"abc":   false,
		"NaN":   false,
		"Inf":   false,
	}
	for price, ok := range cases {
		d, _ := validDraft(t).SetPriceMode("Paid")
		d, _ = d.SetPrice(price)
		errs := Validate(d, testCategories)
		if ok {
			assert.Empty(t, errs, price)
		} else {
			assert.Equal(t, []string{FieldPrice}, fields(errs), price)
		}
	}
}

func TestFreeCourseNeedsNoPrice(t *testing.T) {
	d, err := validDraft(t).SetPriceMode("Free")
	require.NoError(t, err)
	assert.Equal(t, FreePrice, d.Metadata().Price)
	assert.Empty(t, Validate(d, testCategories))

	_, err = d.SetPrice("10")
	assert.ErrorIs(t, err, ErrPriceNotEditable)
}

func TestDescriptionBlockRules(t *testing.T) {
	d := validDraft(t)
	d, _ = d.AddDescriptionBlock()
	d, _ = d.SetBlockHeadline(1, "Second")
	d, _ = d.AddBlockText(1)
	d, _ = d.AddBlockPoints(1)
	d, _ = d.SetBlockPoints(1, " • • ")

	errs := Validate(d, testCategories)
	assert.Equal(t, []string{"description[1].text", "description[1].point"}, fields(errs))

	d, _ = d.SetBlockText(1, "Body")
	d, _ = d.SetBlockPoints(1, "one")
	assert.Empty(t, Validate(d, testCategories))
}

func TestAnswerMustReferencePopulatedOption(t *testing.T) {
	d, key := validDraft(t).AddModule()
	e, _ := OpenQuizEditor(d, ModuleQuizTarget(key))
	e, _ = e.SetCorrectAnswer(2, AnswerC)
	d, err := e.Save(d)
	require.NoError(t, err)

	errs := Validate(d, testCategories)
	assert.Equal(t, []string{"modules." + key + ".quiz[2].correctAnswer"}, fields(errs))

	e, _ = OpenQuizEditor(d, ModuleQuizTarget(key))
	e, _ = e.SetOption(2, 2, "the answer")
	d, _ = e.Save(d)
	assert.Empty(t, Validate(d, testCategories))
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{{Field: "title", Reason: "course title is required"}}
	assert.Equal(t, "validation failed: title: course title is required", errs.Error())
}
