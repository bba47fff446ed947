package service

import "fmt"

// AssetUploadError 提交时图片上传失败；草稿保留原有引用
type AssetUploadError struct {
	Slot ImageSlot
	Err  error
}

func (e *AssetUploadError) Error() string {
	return fmt.Sprintf("upload %s image: %v", e.Slot, e.Err)
}

func (e *AssetUploadError) Unwrap() error { return e.Err }

// PersistenceError 课程文档读写失败；会话中的草稿原样保留以便重试
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
