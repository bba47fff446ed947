package controller

import (
	"course_admin_backend/internal/authoring"
	"course_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningPointRequest struct {
	Title   string `json:"title"`
	Details string `json:"details"`
}

// @Summary 添加描述段落
// @Tags 课程描述
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/description/blocks [post]
func (c *DraftController) AddDescriptionBlock(ctx *gin.Context) {
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.AddDescriptionBlock()
	})
}

// @Summary 删除描述段落
// @Description 第一个段落不可删除
// @Tags 课程描述
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param index path int true "段落下标"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/description/blocks/{index} [delete]
func (c *DraftController) RemoveDescriptionBlock(ctx *gin.Context) {
	i, ok := pathIndex(ctx, "index")
	if !ok {
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.RemoveDescriptionBlock(i)
	})
}

// @Summary 修改段落标题
// @Description 超过 4000 字总预算时 applied=false
// @Tags 课程描述
// @Accept json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param index path int true "段落下标"
// @Param body body ValueRequest true "标题"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/description/blocks/{index}/headline [put]
func (c *DraftController) SetBlockHeadline(ctx *gin.Context) {
	i, ok := pathIndex(ctx, "index")
	if !ok {
		return
	}
	v, ok := bindValue(ctx)
	if !ok {
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.SetBlockHeadline(i, v)
	})
}

// @Summary 为段落添加正文
// @Tags 课程描述
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param index path int true "段落下标"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/description/blocks/{index}/text [post]
func (c *DraftController) AddBlockText(ctx *gin.Context) {
	i, ok := pathIndex(ctx, "index")
	if !ok {
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.AddBlockText(i)
	})
}

// @Summary 修改段落正文
// @Tags 课程描述
// @Accept json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param index path int true "段落下标"
// @Param body body ValueRequest true "正文"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/description/blocks/{index}/text [put]
func (c *DraftController) SetBlockText(ctx *gin.Context) {
	i, ok := pathIndex(ctx, "index")
	if !ok {
		return
	}
	v, ok := bindValue(ctx)
	if !ok {
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.SetBlockText(i, v)
	})
}

// @Summary 为段落添加要点列表
// @Tags 课程描述
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param index path int true "段落下标"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/description/blocks/{index}/points [post]
func (c *DraftController) AddBlockPoints(ctx *gin.Context) {
	i, ok := pathIndex(ctx, "index")
	if !ok {
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.AddBlockPoints(i)
	})
}

// @Summary 修改段落要点
// @Description value 为以 • 分隔的要点文本
// @Tags 课程描述
// @Accept json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param index path int true "段落下标"
// @Param body body ValueRequest true "要点文本"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/description/blocks/{index}/points [put]
func (c *DraftController) SetBlockPoints(ctx *gin.Context) {
	i, ok := pathIndex(ctx, "index")
	if !ok {
		return
	}
	v, ok := bindValue(ctx)
	if !ok {
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.SetBlockPoints(i, v)
	})
}

// @Summary 添加学习要点
// @Tags 课程编辑
// @Accept json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param body body LearningPointRequest true "学习要点"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/learning-points [post]
func (c *DraftController) AddLearningPoint(ctx *gin.Context) {
	var req LearningPointRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.AddLearningPoint(authoring.LearningPoint{Title: req.Title, Details: req.Details}), nil
	})
}

// @Summary 修改学习要点
// @Tags 课程编辑
// @Accept json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param index path int true "下标"
// @Param body body LearningPointRequest true "学习要点"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/learning-points/{index} [put]
func (c *DraftController) SetLearningPoint(ctx *gin.Context) {
	i, ok := pathIndex(ctx, "index")
	if !ok {
		return
	}
	var req LearningPointRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.SetLearningPoint(i, authoring.LearningPoint{Title: req.Title, Details: req.Details})
	})
}

// @Summary 删除学习要点
// @Tags 课程编辑
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param index path int true "下标"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/learning-points/{index} [delete]
func (c *DraftController) RemoveLearningPoint(ctx *gin.Context) {
	i, ok := pathIndex(ctx, "index")
	if !ok {
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.RemoveLearningPoint(i)
	})
}

// @Summary 添加模块
// @Description 新模块键为 module<N>，已删除的键不会复用
// @Tags 课程模块
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/modules [post]
func (c *DraftController) AddModule(ctx *gin.Context) {
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		d, _ = d.AddModule()
		return d, nil
	})
}

// @Summary 删除模块
// @Tags 课程模块
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param key path string true "模块键"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/modules/{key} [delete]
func (c *DraftController) RemoveModule(ctx *gin.Context) {
	key := ctx.Param("key")
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.RemoveModule(key)
	})
}

// @Summary 修改模块标题
// @Tags 课程模块
// @Accept json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param key path string true "模块键"
// @Param body body ValueRequest true "标题"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/modules/{key}/title [put]
func (c *DraftController) SetModuleTitle(ctx *gin.Context) {
	key := ctx.Param("key")
	v, ok := bindValue(ctx)
	if !ok {
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.SetModuleTitle(key, v)
	})
}

// @Summary 展开/收起模块
// @Tags 课程模块
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param key path string true "模块键"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/modules/{key}/toggle [post]
func (c *DraftController) ToggleModule(ctx *gin.Context) {
	key := ctx.Param("key")
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.ToggleModuleExpanded(key)
	})
}

// @Summary 添加课时
// @Description 最后一个课时全部为空时不会重复添加
// @Tags 课程模块
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param key path string true "模块键"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/modules/{key}/lessons [post]
func (c *DraftController) AddLesson(ctx *gin.Context) {
	key := ctx.Param("key")
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.AddLesson(key)
	})
}

// @Summary 删除课时
// @Tags 课程模块
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param key path string true "模块键"
// @Param index path int true "课时下标"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/modules/{key}/lessons/{index} [delete]
func (c *DraftController) RemoveLesson(ctx *gin.Context) {
	key := ctx.Param("key")
	i, ok := pathIndex(ctx, "index")
	if !ok {
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.RemoveLesson(key, i)
	})
}

// @Summary 修改课时字段
// @Tags 课程模块
// @Accept json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param key path string true "模块键"
// @Param index path int true "课时下标"
// @Param field path string true "title / videoUrl / description"
// @Param body body ValueRequest true "字段值"
// @Success 200 {object} util.Response
// @Router /api/admin/drafts/{id}/modules/{key}/lessons/{index}/{field} [put]
func (c *DraftController) SetLessonField(ctx *gin.Context) {
	key := ctx.Param("key")
	i, ok := pathIndex(ctx, "index")
	if !ok {
		return
	}
	field, err := authoring.ParseLessonField(ctx.Param("field"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	v, ok := bindValue(ctx)
	if !ok {
		return
	}
	c.edit(ctx, func(d authoring.CourseDraft) (authoring.CourseDraft, error) {
		return d.SetLessonField(key, i, field, v)
	})
}
