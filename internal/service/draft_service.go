package service

import (
	"context"
	"course_admin_backend/internal/authoring"
	"course_admin_backend/internal/util"
	"course_admin_backend/pkg/logger"
	"course_admin_backend/pkg/monitoring"
	"course_admin_backend/pkg/tracing"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CourseStore 课程文档的持久化协作方
type CourseStore interface {
	Load(ctx context.Context, id string) (authoring.CourseRecord, error)
	Create(ctx context.Context, rec authoring.CourseRecord) (string, error)
	Update(ctx context.Context, id string, rec authoring.CourseRecord) error
}

// AssetUploader 上传本地文件并返回 URL
type AssetUploader interface {
	UploadFile(ctx context.Context, filename string, localPath string, contentType string) (string, error)
}

type CategoryLister interface {
	List(ctx context.Context) ([]authoring.Category, error)
}

// DraftStore 编辑会话的序列化存储（Redis 或内存）
type DraftStore interface {
	Get(ctx context.Context, id string) ([]byte, error)
	Save(ctx context.Context, id string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	AcquireLock(ctx context.Context, id string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, id string) error
}

type SessionMode string

const (
	ModeCreate SessionMode = "create"
	ModeEdit   SessionMode = "edit"
)

type ImageSlot string

const (
	SlotProfile   ImageSlot = "profile"
	SlotThumbnail ImageSlot = "thumbnail"
)

func ParseImageSlot(s string) (ImageSlot, error) {
	switch ImageSlot(s) {
	case SlotProfile, SlotThumbnail:
		return ImageSlot(s), nil
	}
	return "", fmt.Errorf("unknown image slot %q", s)
}

// Session 一个编辑会话独占一份草稿，直到提交成功
type Session struct {
	ID        string                `json:"id"`
	Mode      SessionMode           `json:"mode"`
	CourseID  string                `json:"courseId,omitempty"`
	OwnerID   uint                  `json:"ownerId"`
	Draft     authoring.CourseDraft `json:"draft"`
	Editor    *authoring.QuizEditor `json:"editor,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// SubmitResult 提交结果；AssetErrors 中的图片保留了原引用，不阻塞提交
type SubmitResult struct {
	CourseID    string
	Created     bool
	Record      authoring.CourseRecord
	AssetErrors []*AssetUploadError
	Session     *Session
}

type DraftOptions struct {
	TTL     time.Duration
	LockTTL time.Duration
}

type DraftService struct {
	store      DraftStore
	courses    CourseStore
	uploader   AssetUploader
	categories CategoryLister
	stager     *AssetStager

	ttl     atomic.Int64
	lockTTL time.Duration
	stripes [64]sync.Mutex
	now     func() time.Time
}

func NewDraftService(store DraftStore, courses CourseStore, uploader AssetUploader, categories CategoryLister, stager *AssetStager, opts DraftOptions) *DraftService {
	s := &DraftService{
		store:      store,
		courses:    courses,
		uploader:   uploader,
		categories: categories,
		stager:     stager,
		lockTTL:    opts.LockTTL,
		now:        time.Now,
	}
	if s.lockTTL <= 0 {
		s.lockTTL = time.Minute
	}
	s.SetTTL(opts.TTL)
	return s
}

// SetTTL 调整会话过期时间，配置热更新时调用
func (s *DraftService) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	s.ttl.Store(int64(ttl))
}

func (s *DraftService) TTL() time.Duration { return time.Duration(s.ttl.Load()) }

func (s *DraftService) stripe(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.stripes[h.Sum32()%uint32(len(s.stripes))]
}

func (s *DraftService) load(ctx context.Context, id string, owner uint) (*Session, error) {
	data, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if sess.OwnerID != owner {
		return nil, util.ErrPermissionDenied
	}
	return &sess, nil
}

func (s *DraftService) save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = s.now()
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, sess.ID, data, s.TTL())
}

// Open 打开编辑会话：courseID 为空时新建草稿，否则加载已有课程
func (s *DraftService) Open(ctx context.Context, owner uint, courseID string) (sess *Session, err error) {
	ctx, span := tracing.StartSpan(ctx, "DraftService.Open", courseID)
	defer func() { tracing.EndSpan(span, err) }()

	now := s.now()
	sess = &Session{
		ID:        uuid.New().String(),
		Mode:      ModeCreate,
		OwnerID:   owner,
		Draft:     authoring.NewDraft(),
		CreatedAt: now,
	}

	if courseID != "" {
		rec, err := s.courses.Load(ctx, courseID)
		if errors.Is(err, util.ErrCourseNotFound) {
			return nil, err
		}
		if err != nil {
			return nil, &PersistenceError{Op: "load course " + courseID, Err: err}
		}
		draft, err := authoring.FromRecord(courseID, rec)
		if err != nil {
			return nil, &PersistenceError{Op: "load course " + courseID, Err: err}
		}
		sess.Mode = ModeEdit
		sess.CourseID = courseID
		sess.Draft = draft
	}

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	logger.Log.Info("draft session opened",
		zap.String("session", sess.ID),
		zap.String("mode", string(sess.Mode)),
		zap.String("course", courseID),
		zap.Uint("owner", owner),
	)
	return sess, nil
}

func (s *DraftService) Get(ctx context.Context, id string, owner uint) (*Session, error) {
	return s.load(ctx, id, owner)
}

// Discard 丢弃会话及其暂存图片
func (s *DraftService) Discard(ctx context.Context, id string, owner uint) error {
	mu := s.stripe(id)
	mu.Lock()
	defer mu.Unlock()

	sess, err := s.load(ctx, id, owner)
	if err != nil {
		return err
	}
	s.discardPending(sess.Draft)
	return s.store.Delete(ctx, id)
}

// mutate 在会话锁内读取、变更并写回会话。fn 返回错误时会话保持不变
func (s *DraftService) mutate(ctx context.Context, id string, owner uint, fn func(*Session) error) (*Session, error) {
	mu := s.stripe(id)
	mu.Lock()
	defer mu.Unlock()

	sess, err := s.load(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	before := *sess
	if err := fn(sess); err != nil {
		return &before, err
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Edit 对草稿应用一次变更操作。超出描述字数预算时返回 ErrBudgetExceeded
// 与未变更的会话
func (s *DraftService) Edit(ctx context.Context, id string, owner uint, op func(authoring.CourseDraft) (authoring.CourseDraft, error)) (*Session, error) {
	sess, err := s.mutate(ctx, id, owner, func(sess *Session) error {
		draft, err := op(sess.Draft)
		if err != nil {
			return err
		}
		sess.Draft = draft
		return nil
	})

	switch {
	case err == nil:
		monitoring.DraftEdits.WithLabelValues("applied").Inc()
	case errors.Is(err, authoring.ErrBudgetExceeded):
		monitoring.DraftEdits.WithLabelValues("rejected").Inc()
		monitoring.BudgetRejections.Inc()
		logger.Log.Debug("description edit over budget", zap.String("session", id))
	default:
		monitoring.DraftEdits.WithLabelValues("error").Inc()
	}
	return sess, err
}

// StageImage 暂存图片并挂到草稿对应字段，替换之前未上传的暂存文件
func (s *DraftService) StageImage(ctx context.Context, id string, owner uint, slot ImageSlot, file io.ReadSeeker, filename string, size int64) (*Session, error) {
	// 先确认会话存在，避免为无效会话写文件
	if _, err := s.load(ctx, id, owner); err != nil {
		return nil, err
	}
	pending, err := s.stager.Stage(file, filename, size)
	if err != nil {
		return nil, err
	}

	var replaced authoring.PendingAsset
	sess, err := s.mutate(ctx, id, owner, func(sess *Session) error {
		ref := imageRef(sess.Draft, slot)
		replaced, _ = ref.Pending()
		sess.Draft = setImageRef(sess.Draft, slot, ref.WithPending(pending))
		return nil
	})
	if err != nil {
		s.stager.Discard(pending)
		return nil, err
	}
	s.stager.Discard(replaced)
	return sess, nil
}

func imageRef(d authoring.CourseDraft, slot ImageSlot) authoring.ImageRef {
	if slot == SlotThumbnail {
		return d.Thumbnail()
	}
	return d.ProfileImage()
}

func setImageRef(d authoring.CourseDraft, slot ImageSlot, ref authoring.ImageRef) authoring.CourseDraft {
	if slot == SlotThumbnail {
		return d.SetThumbnail(ref)
	}
	return d.SetProfileImage(ref)
}

func (s *DraftService) discardPending(d authoring.CourseDraft) {
	for _, slot := range []ImageSlot{SlotProfile, SlotThumbnail} {
		if p, ok := imageRef(d, slot).Pending(); ok {
			if err := s.stager.Discard(p); err != nil {
				logger.Log.Warn("failed to remove staged image", zap.String("path", p.Path), zap.Error(err))
			}
		}
	}
}

// OpenEditor 打开测验编辑器，总是从已保存的测验重新开始
func (s *DraftService) OpenEditor(ctx context.Context, id string, owner uint, target authoring.QuizTarget) (*Session, error) {
	return s.mutate(ctx, id, owner, func(sess *Session) error {
		e, err := authoring.OpenQuizEditor(sess.Draft, target)
		if err != nil {
			return err
		}
		sess.Editor = &e
		return nil
	})
}

// EditQuiz 对打开的编辑器执行一步操作（编辑题目或前后翻页）
func (s *DraftService) EditQuiz(ctx context.Context, id string, owner uint, op func(authoring.QuizEditor) (authoring.QuizEditor, error)) (*Session, error) {
	return s.mutate(ctx, id, owner, func(sess *Session) error {
		if sess.Editor == nil {
			return util.ErrEditorClosed
		}
		e, err := op(*sess.Editor)
		if err != nil {
			return err
		}
		sess.Editor = &e
		return nil
	})
}

// SaveEditor 写回编辑缓冲并关闭编辑器
func (s *DraftService) SaveEditor(ctx context.Context, id string, owner uint) (*Session, error) {
	return s.mutate(ctx, id, owner, func(sess *Session) error {
		if sess.Editor == nil {
			return util.ErrEditorClosed
		}
		draft, err := sess.Editor.Save(sess.Draft)
		if err != nil {
			return err
		}
		sess.Draft = draft
		sess.Editor = nil
		return nil
	})
}

// CloseEditor 放弃编辑缓冲
func (s *DraftService) CloseEditor(ctx context.Context, id string, owner uint) (*Session, error) {
	return s.mutate(ctx, id, owner, func(sess *Session) error {
		sess.Editor = nil
		return nil
	})
}

// Validate 对当前草稿运行全部校验规则
func (s *DraftService) Validate(ctx context.Context, id string, owner uint) (authoring.ValidationErrors, error) {
	sess, err := s.load(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list categories", Err: err}
	}
	return authoring.Validate(sess.Draft, categories), nil
}

// Submit 校验、上传暂存图片并持久化。创建模式提交后重置草稿，编辑模式提交后关闭会话
func (s *DraftService) Submit(ctx context.Context, id string, owner uint) (res *SubmitResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "DraftService.Submit", id)
	defer func() { tracing.EndSpan(span, err) }()

	ok, err := s.store.AcquireLock(ctx, id, s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrSubmitInProgress
	}
	defer func() {
		if err := s.store.ReleaseLock(context.Background(), id); err != nil {
			logger.Log.Warn("failed to release submit lock", zap.String("session", id), zap.Error(err))
		}
	}()

	mu := s.stripe(id)
	mu.Lock()
	defer mu.Unlock()

	sess, err := s.load(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	mode := string(sess.Mode)

	categories, err := s.categories.List(ctx)
	if err != nil {
		monitoring.Submits.WithLabelValues(mode, "error").Inc()
		return nil, &PersistenceError{Op: "list categories", Err: err}
	}
	if errs := authoring.Validate(sess.Draft, categories); len(errs) > 0 {
		monitoring.Submits.WithLabelValues(mode, "invalid").Inc()
		return nil, errs
	}

	res = &SubmitResult{}
	sess.Draft, res.AssetErrors = s.uploadPending(ctx, sess)
	// 已上传的图片写回会话，持久化失败重试时无需重新上传
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	rec := sess.Draft.Record()
	switch sess.Mode {
	case ModeEdit:
		err = s.courses.Update(ctx, sess.CourseID, rec)
		res.CourseID = sess.CourseID
	default:
		res.CourseID, err = s.courses.Create(ctx, rec)
		res.Created = true
	}
	if err != nil {
		monitoring.Submits.WithLabelValues(mode, "error").Inc()
		logger.Log.Error("course persistence failed", zap.String("session", id), zap.Error(err))
		return nil, &PersistenceError{Op: "save course", Err: err}
	}
	res.Record = rec
	monitoring.Submits.WithLabelValues(mode, "ok").Inc()

	if sess.Mode == ModeEdit {
		if err := s.store.Delete(ctx, id); err != nil {
			logger.Log.Warn("failed to close session", zap.String("session", id), zap.Error(err))
		}
	} else {
		sess.Draft = authoring.NewDraft()
		sess.Editor = nil
		if err := s.save(ctx, sess); err != nil {
			logger.Log.Warn("failed to reset session", zap.String("session", id), zap.Error(err))
		}
		res.Session = sess
	}

	logger.Log.Info("course submitted",
		zap.String("session", id),
		zap.String("course", res.CourseID),
		zap.String("mode", mode),
		zap.Int("assetErrors", len(res.AssetErrors)),
	)
	return res, nil
}

// uploadPending 上传暂存图片；失败的字段保留原 URL 并丢弃暂存文件
func (s *DraftService) uploadPending(ctx context.Context, sess *Session) (authoring.CourseDraft, []*AssetUploadError) {
	d := sess.Draft
	var failures []*AssetUploadError
	for _, slot := range []ImageSlot{SlotProfile, SlotThumbnail} {
		ref := imageRef(d, slot)
		p, ok := ref.Pending()
		if !ok {
			continue
		}
		owner := sess.CourseID
		if owner == "" {
			owner = sess.ID
		}
		url, err := s.uploader.UploadFile(ctx, ObjectName(owner, p.FileName), p.Path, p.ContentType)
		if err != nil {
			monitoring.AssetUploads.WithLabelValues("error").Inc()
			logger.Log.Error("image upload failed", zap.String("slot", string(slot)), zap.Error(err))
			failures = append(failures, &AssetUploadError{Slot: slot, Err: err})
			d = setImageRef(d, slot, authoring.NewImageRef(ref.URL()))
		} else {
			monitoring.AssetUploads.WithLabelValues("ok").Inc()
			d = setImageRef(d, slot, ref.Committed(url))
		}
		s.stager.Discard(p)
	}
	return d, failures
}
