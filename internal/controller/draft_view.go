package controller

import (
	"course_admin_backend/internal/authoring"
	"course_admin_backend/internal/service"
)

type BudgetView struct {
	Limit     int `json:"limit"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

type EditorView struct {
	Target     authoring.QuizTarget `json:"target"`
	Step       int                  `json:"step"`
	Length     int                  `json:"length"`
	Progress   int                  `json:"progressPercent"`
	Current    authoring.Question   `json:"current"`
	Questions  []authoring.Question `json:"questions"`
	HasContent bool                 `json:"hasContent"`
}

// QuizStatusView 对应界面上「添加/编辑测验」按钮的状态
type QuizStatusView struct {
	Modules   map[string]bool `json:"modules"`
	FinalExam bool            `json:"finalExam"`
}

// PendingImageView 已暂存待上传的图片，不暴露服务器上的暂存路径
type PendingImageView struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type ImageView struct {
	URL     string            `json:"url"`
	Pending *PendingImageView `json:"pending,omitempty"`
}

type DraftView struct {
	ID             string                         `json:"id,omitempty"`
	Metadata       authoring.Metadata             `json:"metadata"`
	KeyTopics      []string                       `json:"keyTopics"`
	ProfileImage   ImageView                      `json:"profileImage"`
	Thumbnail      ImageView                      `json:"thumbnail"`
	Description    authoring.DescriptionBlockList `json:"description"`
	LearningPoints authoring.LearningPointList    `json:"learningPoints"`
	Modules        authoring.ModuleMap            `json:"modules"`
	FinalExam      authoring.QuizQuestionSet      `json:"finalExam"`
}

type SessionView struct {
	ID         string              `json:"id"`
	Mode       service.SessionMode `json:"mode"`
	CourseID   string              `json:"courseId,omitempty"`
	Draft      DraftView           `json:"draft"`
	Budget     BudgetView          `json:"budget"`
	QuizStatus QuizStatusView      `json:"quizStatus"`
	Editor     *EditorView         `json:"editor,omitempty"`
}

// EditResult 编辑操作的响应；Applied 为 false 表示超出描述字数预算，草稿未变
type EditResult struct {
	Applied bool         `json:"applied"`
	Reason  string       `json:"reason,omitempty"`
	Session *SessionView `json:"session"`
}

type SubmitView struct {
	CourseID    string                 `json:"courseId"`
	Created     bool                   `json:"created"`
	Course      authoring.CourseRecord `json:"course"`
	AssetErrors []string               `json:"assetErrors,omitempty"`
	Session     *SessionView           `json:"session,omitempty"`
}

func newImageView(r authoring.ImageRef) ImageView {
	v := ImageView{URL: r.URL()}
	if p, ok := r.Pending(); ok {
		v.Pending = &PendingImageView{FileName: p.FileName, ContentType: p.ContentType, Size: p.Size}
	}
	return v
}

func newDraftView(d authoring.CourseDraft) DraftView {
	return DraftView{
		ID:             d.ID(),
		Metadata:       d.Metadata(),
		KeyTopics:      d.KeyTopics(),
		ProfileImage:   newImageView(d.ProfileImage()),
		Thumbnail:      newImageView(d.Thumbnail()),
		Description:    d.Description(),
		LearningPoints: d.LearningPoints(),
		Modules:        d.Modules(),
		FinalExam:      d.FinalExam(),
	}
}

func newSessionView(s *service.Session) *SessionView {
	if s == nil {
		return nil
	}
	d := s.Draft
	v := &SessionView{
		ID:       s.ID,
		Mode:     s.Mode,
		CourseID: s.CourseID,
		Draft:    newDraftView(d),
		Budget: BudgetView{
			Limit:     authoring.DescriptionBudget,
			Used:      d.Description().TotalConsumed(),
			Remaining: d.Description().Remaining(),
		},
		QuizStatus: QuizStatusView{
			Modules:   make(map[string]bool, d.Modules().Len()),
			FinalExam: d.HasFinalExamContent(),
		},
	}
	for _, key := range d.Modules().Keys() {
		v.QuizStatus.Modules[key] = d.HasModuleQuizContent(key)
	}
	if s.Editor != nil {
		e := *s.Editor
		v.Editor = &EditorView{
			Target:     e.Target(),
			Step:       e.Step(),
			Length:     e.Len(),
			Progress:   e.ProgressPercent(),
			Current:    e.Current(),
			Questions:  e.Buffer().Questions(),
			HasContent: e.Buffer().HasContent(),
		}
	}
	return v
}

func newSubmitView(res *service.SubmitResult) SubmitView {
	v := SubmitView{
		CourseID: res.CourseID,
		Created:  res.Created,
		Course:   res.Record,
		Session:  newSessionView(res.Session),
	}
	for _, e := range res.AssetErrors {
		v.AssetErrors = append(v.AssetErrors, e.Error())
	}
	return v
}
