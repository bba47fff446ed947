package controller

import (
	"course_admin_backend/internal/service"
	"course_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Service *service.CourseService
}

func NewCourseController(s *service.CourseService) *CourseController {
	return &CourseController{Service: s}
}

// @Summary 课程列表
// @Tags 课程管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param category query string false "分类"
// @Param keyword query string false "标题或讲师关键字"
// @Success 200 {object} util.Response
// @Router /api/admin/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))
	res, err := c.Service.List(ctx.Request.Context(), page, limit, ctx.Query("category"), ctx.Query("keyword"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary 课程详情
// @Description 返回与提交时一致的课程记录
// @Tags 课程管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	rec, err := c.Service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// @Summary 删除课程
// @Tags 课程管理
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 课程分类选项
// @Tags 课程管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/categories [get]
func (c *CourseController) Categories(ctx *gin.Context) {
	cats, err := c.Service.ListCategories(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, cats)
}
