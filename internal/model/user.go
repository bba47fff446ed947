package model

type UserRole string

const (
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// CanAuthor 是否允许使用课程编辑接口
func (r UserRole) CanAuthor() bool {
	return r == Admin || r == Instructor
}
