package controller

import (
	"course_admin_backend/internal/authoring"
	"course_admin_backend/internal/service"
	"course_admin_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type DraftController struct {
	Service *service.DraftService
}

func NewDraftController(s *service.DraftService) *DraftController {
	return &DraftController{Service: s}
}

type OpenDraftRequest struct {
	CourseID string `json:"courseId"`
}

// ValueRequest 单字段编辑，允许空字符串
type ValueRequest struct {
	Value *string `json:"value" binding:"required"`
}

type KeyTopicRequest struct {
	Topic string `json:"topic" binding:"required,notblank"`
}

type KeyTopicsRequest struct {
	Topics []string `json:"topics"`
}

type MetadataRequest struct {
	Title      *string `json:"title"`
	Instructor *string `json:"instructor"`
	Level      *string `json:"level"`
	Language   *string `json:"language"`
	Duration   *string `json:"duration"`
	Category   *string `json:"category"`
	PriceMode  *string `json:"priceMode"`
	Price      *string `json:"price"`
	Active     *bool   `json:"active"`
}

// apply 按字段依次写入；priceMode 先于 price 处理
func (r MetadataRequest) apply(d authoring.CourseDraft) (authoring.CourseDraft, error) {
	var err error
	if r.Title != nil {
		d = d.SetTitle(*r.Title)
	}
	if r.Instructor != nil {
		d = d.SetInstructor(*r.Instructor)
	}
	if r.Language != nil {
		d = d.SetLanguage(*r.Language)
	}
	if r.Duration != nil {
		d = d.SetDuration(*r.Duration)
	}
	if r.Category != nil {
		d = d.SetCategory(*r.Category)
	}
	if r.Active != nil {
		d = d.SetActive(*r.Active)
	}
	if r.Level != nil {
		if d, err = d.SetLevel(*r.Level); err != nil {
			return d, err
		}
	}
	if r.PriceMode != nil {
		if d, err = d.SetPriceMode(*r.PriceMode); err != nil {
			return d, err
		}
	}
	if r.Price != nil {
		if d, err = d.SetPrice(*r.Price); err != nil {
			return d, err
		}
	}
	return d, nil
}

func ownerID(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return claims.UserID, true
}

func bindValue(ctx *gin.Context) (string, bool) {
	var req ValueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return "", false
	}
	return *req.Value, true
}

func pathIndex(ctx *gin.Context, name string) (int, bool) {
	i, err := util.ParseIndex(ctx.Param(name))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return 0, false
	}
	return i, true
}

// edit 执行一次草稿变更；超出字数预算时返回 applied=false
func (c *DraftController) edit(ctx *gin.Context, op func(authoring.CourseDraft) (authoring.CourseDraft, error)) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	sess, err := c.Service.Edit(ctx.Request.Context(), ctx.Param("id"), owner, op)
	if errors.Is(err, authoring.ErrBudgetExceeded) {
		util.Success(ctx, EditResult{Applied: false, Reason: err.Error(), Session: newSessionView(sess)})
		return
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, EditResult{Applied: true, Session: newSessionView(sess)})
}

func (c *DraftController) respondSession(ctx *gin.Context, sess *service.Session, err error) {
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, newSessionView(sess))
}

// @Summary 打开课程编辑会话
// @Description courseId 为空时新建课程草稿，否则加载已有课程进入编辑模式
// @Tags 课程编辑
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body OpenDraftRequest false "课程ID"
// @Success 201 {object} util.Response
// @Router /api/admin/drafts [post]
func (c *DraftController) Open(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	var req OpenDraftRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}
	sess, err := c.Service.Open(ctx.Request.Context(), owner, req.CourseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, newSessionView(sess))
}

// @Summary 获取编辑会话
// @Tags 课程编辑
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id} [get]
func (c *DraftController) Get(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	sess, err := c.Service.Get(ctx.Request.Context(), ctx.Param("id"), owner)
	c.respondSession(ctx, sess, err)
}

// @Summary 丢弃编辑会话
// @Tags 课程编辑
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id} [delete]
func (c *DraftController) Discard(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	if err := c.Service.Discard(ctx.Request.Context(), ctx.Param("id"), owner); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 修改课程基本信息
// @Description 只更新请求中出现的字段；免费课程不可设置价格
// @Tags 课程编辑
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param body body MetadataRequest true "基本信息"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/metadata [patch]
func (c *DraftController) UpdateMetadata(ctx *gin.Context) {
	var req MetadataRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.edit(ctx, req.apply)
}

// @Summary 设置关键主题
// @Tags 课程编辑
// @Accept json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param body body KeyTopicsRequest true "主题列表"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/key-topics [put]
func (c *DraftController) SetKeyTopics(ctx *gin.Context) {
	var req KeyTopicsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.SetKeyTopics(req.Topics), nil
	})
}

// @Summary 添加关键主题
// @Tags 课程编辑
// @Accept json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param body body KeyTopicRequest true "主题"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/key-topics [post]
func (c *DraftController) AddKeyTopic(ctx *gin.Context) {
	var req KeyTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.AddKeyTopic(req.Topic), nil
	})
}

// @Summary 删除关键主题
// @Tags 课程编辑
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param index path int true "下标"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/key-topics/{index} [delete]
func (c *DraftController) RemoveKeyTopic(ctx *gin.Context) {
	i, ok := pathIndex(ctx, "index")
	if !ok {
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.RemoveKeyTopic(i)
	})
}

// @Summary 上传课程图片（暂存，提交时上传）
// @Tags 课程编辑
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param slot path string true "profile 或 thumbnail"
// @Param file formData file true "图片"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/images/{slot} [post]
func (c *DraftController) StageImage(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	slot, err := service.ParseImageSlot(ctx.Param("slot"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		util.BadRequest(ctx, "cannot read uploaded file")
		return
	}
	defer file.Close()

	sess, err := c.Service.StageImage(ctx.Request.Context(), ctx.Param("id"), owner, slot, file, header.Filename, header.Size)
	c.respondSession(ctx, sess, err)
}

// @Summary 校验草稿
// @Description 返回全部字段错误，不会短路
// @Tags 课程编辑
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/validation [get]
func (c *DraftController) Validate(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	errs, err := c.Service.Validate(ctx.Request.Context(), ctx.Param("id"), owner)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if errs == nil {
		errs = authoring.ValidationErrors{}
	}
	util.Success(ctx, gin.H{"valid": len(errs) == 0, "errors": errs})
}

// @Summary 提交课程
// @Description 校验通过后上传暂存图片并保存课程；新建模式提交后草稿重置，编辑模式提交后会话关闭
// @Tags 课程编辑
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/admin/drafts/{id}/submit [post]
func (c *DraftController) Submit(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	res, err := c.Service.Submit(ctx.Request.Context(), ctx.Param("id"), owner)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if res.Created {
		util.Created(ctx, newSubmitView(res))
		return
	}
	util.Success(ctx, newSubmitView(res))
}
