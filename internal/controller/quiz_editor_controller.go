package controller

import (
	"course_admin_backend/internal/authoring"
	"course_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type OpenEditorRequest struct {
	ModuleKey string `json:"moduleKey"`
	FinalExam bool   `json:"finalExam"`
}

func (c *DraftController) editQuiz(ctx *gin.Context, op func(authoring.QuizEditor) (authoring.QuizEditor, error)) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	sess, err := c.Service.EditQuiz(ctx.Request.Context(), ctx.Param("id"), owner, op)
	c.respondSession(ctx, sess, err)
}

// @Summary 打开测验编辑器
// @Description 指定 moduleKey 编辑模块测验，或 finalExam=true 编辑期末考试；每次打开都从已保存内容开始
// @Tags 测验编辑
// @Accept json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param body body OpenEditorRequest true "编辑目标"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/editor [post]
func (c *DraftController) OpenEditor(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	var req OpenEditorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	target := authoring.QuizTarget{ModuleKey: req.ModuleKey, FinalExam: req.FinalExam}
	sess, err := c.Service.OpenEditor(ctx.Request.Context(), ctx.Param("id"), owner, target)
	c.respondSession(ctx, sess, err)
}

// @Summary 下一题
// @Tags 测验编辑
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/editor/next [post]
func (c *DraftController) NextQuestion(ctx *gin.Context) {
	c.editQuiz(ctx, func(e authoring.QuizEditor) (authoring.QuizEditor, error) {
		return e.Next(), nil
	})
}

// @Summary 上一题
// @Tags 测验编辑
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/editor/previous [post]
func (c *DraftController) PreviousQuestion(ctx *gin.Context) {
	c.editQuiz(ctx, func(e authoring.QuizEditor) (authoring.QuizEditor, error) {
		return e.Previous(), nil
	})
}

// @Summary 修改题干
// @Tags 测验编辑
// @Accept json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param step path int true "题目下标"
// @Param body body ValueRequest true "题干"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/editor/questions/{step}/prompt [put]
func (c *DraftController) SetQuestionPrompt(ctx *gin.Context) {
	step, ok := pathIndex(ctx, "step")
	if !ok {
		return
	}
	v, ok := bindValue(ctx)
	if !ok {
		return
	}
	c.editQuiz(ctx, func(e authoring.QuizEditor) (authoring.QuizEditor, error) {
		return e.SetPrompt(step, v)
	})
}

// @Summary 修改选项
// @Tags 测验编辑
// @Accept json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param step path int true "题目下标"
// @Param option path int true "选项下标 0-3"
// @Param body body ValueRequest true "选项内容"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/editor/questions/{step}/options/{option} [put]
func (c *DraftController) SetQuestionOption(ctx *gin.Context) {
	step, ok := pathIndex(ctx, "step")
	if !ok {
		return
	}
	option, ok := pathIndex(ctx, "option")
	if !ok {
		return
	}
	v, ok := bindValue(ctx)
	if !ok {
		return
	}
	c.editQuiz(ctx, func(e authoring.QuizEditor) (authoring.QuizEditor, error) {
		return e.SetOption(step, option, v)
	})
}

// @Summary 设置正确答案
// @Tags 测验编辑
// @Accept json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param step path int true "题目下标"
// @Param body body ValueRequest true "A/B/C/D 或空字符串"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/editor/questions/{step}/answer [put]
func (c *DraftController) SetCorrectAnswer(ctx *gin.Context) {
	step, ok := pathIndex(ctx, "step")
	if !ok {
		return
	}
	v, ok := bindValue(ctx)
	if !ok {
		return
	}
	key, err := authoring.ParseAnswerKey(v)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.editQuiz(ctx, func(e authoring.QuizEditor) (authoring.QuizEditor, error) {
		return e.SetCorrectAnswer(step, key)
	})
}

// @Summary 保存测验并关闭编辑器
// @Tags 测验编辑
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/editor/save [post]
func (c *DraftController) SaveEditor(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	sess, err := c.Service.SaveEditor(ctx.Request.Context(), ctx.Param("id"), owner)
	c.respondSession(ctx, sess, err)
}

// @Summary 关闭编辑器（不保存）
// @Tags 测验编辑
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/editor [delete]
func (c *DraftController) CloseEditor(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	sess, err := c.Service.CloseEditor(ctx.Request.Context(), ctx.Param("id"), owner)
	c.respondSession(ctx, sess, err)
}
