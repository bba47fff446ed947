package service

import (
	"bytes"
	"context"
	"course_admin_backend/internal/authoring"
	"course_admin_backend/internal/repository"
	"course_admin_backend/internal/util"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourses struct {
	records   map[string]authoring.CourseRecord
	seq       int
	loadErr   error
	createErr error
	updateErr error
}

func newFakeCourses() *fakeCourses {
	return &fakeCourses{records: make(map[string]authoring.CourseRecord)}
}

func (f *fakeCourses) Load(ctx context.Context, id string) (authoring.CourseRecord, error) {
	if f.loadErr != nil {
		return authoring.CourseRecord{}, f.loadErr
	}
	rec, ok := f.records[id]
	if !ok {
		return authoring.CourseRecord{}, util.ErrCourseNotFound
	}
	return rec, nil
}

func (f *fakeCourses) Create(ctx context.Context, rec authoring.CourseRecord) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.seq++
	id := fmt.Sprintf("course-%d", f.seq)
	f.records[id] = rec
	return id, nil
}

func (f *fakeCourses) Update(ctx context.Context, id string, rec authoring.CourseRecord) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.records[id] = rec
	return nil
}

type fakeUploader struct {
	uploaded []string
	err      error
}

func (f *fakeUploader) UploadFile(ctx context.Context, filename, localPath, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploaded = append(f.uploaded, filename)
	return "https://cdn.example/" + filename, nil
}

type fakeCategories []authoring.Category

func (f fakeCategories) List(ctx context.Context) ([]authoring.Category, error) {
	return f, nil
}

const owner uint = 7

type fixture struct {
	svc      *DraftService
	store    *repository.MemoryDraftRepository
	courses  *fakeCourses
	uploader *fakeUploader
	stager   *AssetStager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    repository.NewMemoryDraftRepository(),
		courses:  newFakeCourses(),
		uploader: &fakeUploader{},
		stager:   NewAssetStager(t.TempDir(), 1),
	}
	cats := fakeCategories{{Label: "Programming", Value: "programming"}}
	f.svc = NewDraftService(f.store, f.courses, f.uploader, cats, f.stager, DraftOptions{TTL: time.Hour})
	return f
}

func fillRequired(d authoring.CourseDraft) (authoring.CourseDraft, error) {
	d = d.SetTitle("Go in Practice").
		SetInstructor("R. Pike").
		SetLanguage("English").
		SetCategory("programming")
	d, err := d.SetLevel("Beginner")
	if err != nil {
		return d, err
	}
	return d.SetBlockHeadline(0, "Overview")
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestOpenCreateSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess, err := f.svc.Open(ctx, owner, "")
	require.NoError(t, err)
	assert.Equal(t, ModeCreate, sess.Mode)
	assert.Equal(t, 1, sess.Draft.Description().Len())

	got, err := f.svc.Get(ctx, sess.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, sess.Draft, got.Draft)

	_, err = f.svc.Get(ctx, sess.ID, owner+1)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = f.svc.Get(ctx, "missing", owner)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestOpenEditSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Open(ctx, owner, "nope")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	f.courses.records["c1"] = authoring.CourseRecord{CourseTitle: "Existing", Price: "30"}
	sess, err := f.svc.Open(ctx, owner, "c1")
	require.NoError(t, err)
	assert.Equal(t, ModeEdit, sess.Mode)
	assert.Equal(t, "c1", sess.Draft.ID())
	assert.Equal(t, "Existing", sess.Draft.Metadata().Title)
	assert.Equal(t, authoring.FinalExamLength, sess.Draft.FinalExam().Len())

	f.courses.loadErr = errors.New("db down")
	_, err = f.svc.Open(ctx, owner, "c1")
	var perr *PersistenceError
	assert.ErrorAs(t, err, &perr)
}

func TestEditOverBudgetLeavesSessionUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.svc.Open(ctx, owner, "")
	require.NoError(t, err)

	sess, err = f.svc.Edit(ctx, sess.ID, owner, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.AddBlockText(0)
	})
	require.NoError(t, err)

	long := string(bytes.Repeat([]byte("x"), authoring.DescriptionBudget+1))
	same, err := f.svc.Edit(ctx, sess.ID, owner, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.SetBlockText(0, long)
	})
	assert.ErrorIs(t, err, authoring.ErrBudgetExceeded)
	assert.Equal(t, authoring.DescriptionBudget, same.Draft.Description().Remaining())

	stored, err := f.svc.Get(ctx, sess.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Draft.Description().TotalConsumed())
}

func TestQuizEditorLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, _ := f.svc.Open(ctx, owner, "")

	var key string
	sess, err := f.svc.Edit(ctx, sess.ID, owner, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		d, key = d.AddModule()
		return d, nil
	})
	require.NoError(t, err)

	_, err = f.svc.EditQuiz(ctx, sess.ID, owner, func(e authoring.QuizEditor) (authoring.QuizEditor, error) {
		return e.Next(), nil
	})
	assert.ErrorIs(t, err, util.ErrEditorClosed)

	sess, err = f.svc.OpenEditor(ctx, sess.ID, owner, authoring.ModuleQuizTarget(key))
	require.NoError(t, err)
	require.NotNil(t, sess.Editor)

	sess, err = f.svc.EditQuiz(ctx, sess.ID, owner, func(e authoring.QuizEditor) (authoring.QuizEditor, error) {
		return e.Next().SetPrompt(1, "What is a goroutine?")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Editor.Step())
	assert.False(t, sess.Draft.HasModuleQuizContent(key))

	sess, err = f.svc.SaveEditor(ctx, sess.ID, owner)
	require.NoError(t, err)
	assert.Nil(t, sess.Editor)
	assert.True(t, sess.Draft.HasModuleQuizContent(key))

	_, err = f.svc.SaveEditor(ctx, sess.ID, owner)
	assert.ErrorIs(t, err, util.ErrEditorClosed)

	_, err = f.svc.OpenEditor(ctx, sess.ID, owner, authoring.ModuleQuizTarget("module9"))
	assert.ErrorIs(t, err, authoring.ErrModuleNotFound)
}

func TestSubmitCreateResetsDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, _ := f.svc.Open(ctx, owner, "")

	_, err := f.svc.Submit(ctx, sess.ID, owner)
	var verrs authoring.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.NotEmpty(t, verrs)
	assert.Empty(t, f.courses.records)

	_, err = f.svc.Edit(ctx, sess.ID, owner, fillRequired)
	require.NoError(t, err)

	res, err := f.svc.Submit(ctx, sess.ID, owner)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "Go in Practice", f.courses.records[res.CourseID].CourseTitle)
	assert.Equal(t, "Free", f.courses.records[res.CourseID].Price)

	after, err := f.svc.Get(ctx, sess.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, authoring.NewDraft(), after.Draft)
}

func TestSubmitEditClosesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.courses.records["c1"] = authoring.CourseRecord{CourseTitle: "Old", Price: "Free"}

	sess, err := f.svc.Open(ctx, owner, "c1")
	require.NoError(t, err)
	_, err = f.svc.Edit(ctx, sess.ID, owner, fillRequired)
	require.NoError(t, err)

	res, err := f.svc.Submit(ctx, sess.ID, owner)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "c1", res.CourseID)
	assert.Equal(t, "Go in Practice", f.courses.records["c1"].CourseTitle)

	_, err = f.svc.Get(ctx, sess.ID, owner)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestSubmitPersistenceFailureKeepsDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, _ := f.svc.Open(ctx, owner, "")
	_, err := f.svc.Edit(ctx, sess.ID, owner, fillRequired)
	require.NoError(t, err)

	f.courses.createErr = errors.New("connection reset")
	_, err = f.svc.Submit(ctx, sess.ID, owner)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)

	kept, err := f.svc.Get(ctx, sess.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Go in Practice", kept.Draft.Metadata().Title)

	f.courses.createErr = nil
	_, err = f.svc.Submit(ctx, sess.ID, owner)
	assert.NoError(t, err)
}

func TestSubmitInProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, _ := f.svc.Open(ctx, owner, "")

	ok, err := f.store.AcquireLock(ctx, sess.ID, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.svc.Submit(ctx, sess.ID, owner)
	assert.ErrorIs(t, err, util.ErrSubmitInProgress)
}

func TestStagedImageUploadedOnSubmit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, _ := f.svc.Open(ctx, owner, "")
	_, err := f.svc.Edit(ctx, sess.ID, owner, fillRequired)
	require.NoError(t, err)

	sess, err = f.svc.StageImage(ctx, sess.ID, owner, SlotThumbnail, bytes.NewReader(pngHeader), "cover.PNG", int64(len(pngHeader)))
	require.NoError(t, err)
	pending, ok := sess.Draft.Thumbnail().Pending()
	require.True(t, ok)
	assert.Equal(t, "image/png", pending.ContentType)
	assert.FileExists(t, pending.Path)

	res, err := f.svc.Submit(ctx, sess.ID, owner)
	require.NoError(t, err)
	assert.Empty(t, res.AssetErrors)
	require.Len(t, f.uploader.uploaded, 1)
	assert.Equal(t, "https://cdn.example/"+f.uploader.uploaded[0], res.Record.Thumbnail)
	assert.NoFileExists(t, pending.Path)
}

func TestFailedUploadKeepsPriorReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.courses.records["c1"] = authoring.CourseRecord{Price: "Free", ProfileImg: "/uploads/old.png"}

	sess, _ := f.svc.Open(ctx, owner, "c1")
	_, err := f.svc.Edit(ctx, sess.ID, owner, fillRequired)
	require.NoError(t, err)
	_, err = f.svc.StageImage(ctx, sess.ID, owner, SlotProfile, bytes.NewReader(pngHeader), "new.png", int64(len(pngHeader)))
	require.NoError(t, err)

	f.uploader.err = errors.New("bucket unavailable")
	res, err := f.svc.Submit(ctx, sess.ID, owner)
	require.NoError(t, err)
	require.Len(t, res.AssetErrors, 1)
	assert.Equal(t, SlotProfile, res.AssetErrors[0].Slot)
	assert.Equal(t, "/uploads/old.png", f.courses.records["c1"].ProfileImg)
}

func TestStageImageRejectsNonImages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, _ := f.svc.Open(ctx, owner, "")

	text := []byte("definitely not an image")
	_, err := f.svc.StageImage(ctx, sess.ID, owner, SlotProfile, bytes.NewReader(text), "fake.png", int64(len(text)))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = f.svc.StageImage(ctx, sess.ID, owner, SlotProfile, bytes.NewReader(pngHeader), "doc.pdf", 10)
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = f.svc.StageImage(ctx, sess.ID, owner, SlotProfile, bytes.NewReader(pngHeader), "big.png", 2<<20)
	assert.ErrorIs(t, err, ErrImageTooLarge)

	entries, err := os.ReadDir(f.stager.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiscardRemovesStagedFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, _ := f.svc.Open(ctx, owner, "")

	sess, err := f.svc.StageImage(ctx, sess.ID, owner, SlotProfile, bytes.NewReader(pngHeader), "a.png", int64(len(pngHeader)))
	require.NoError(t, err)
	first, _ := sess.Draft.ProfileImage().Pending()

	sess, err = f.svc.StageImage(ctx, sess.ID, owner, SlotProfile, bytes.NewReader(pngHeader), "b.png", int64(len(pngHeader)))
	require.NoError(t, err)
	second, _ := sess.Draft.ProfileImage().Pending()
	assert.NoFileExists(t, first.Path)

	require.NoError(t, f.svc.Discard(ctx, sess.ID, owner))
	assert.NoFileExists(t, second.Path)
	_, err = f.svc.Get(ctx, sess.ID, owner)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestSetTTL(t *testing.T) {
	f := newFixture(t)
	f.svc.SetTTL(2 * time.Hour)
	assert.Equal(t, 2*time.Hour, f.svc.TTL())
	f.svc.SetTTL(0)
	assert.Equal(t, 72*time.Hour, f.svc.TTL())
}
