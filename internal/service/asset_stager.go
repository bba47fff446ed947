package service

import (
	"course_admin_backend/internal/authoring"
	"course_admin_backend/internal/util"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedImage = errors.New("only png, jpg, gif and webp images are accepted")
	ErrImageTooLarge    = errors.New("image exceeds the size limit")
)

// AssetStager 将上传的图片暂存到本地目录，提交时再统一上传到存储
type AssetStager struct {
	Dir      string
	MaxBytes int64
}

func NewAssetStager(dir string, maxMB int64) *AssetStager {
	if maxMB <= 0 {
		maxMB = 5
	}
	return &AssetStager{Dir: dir, MaxBytes: maxMB << 20}
}

// Stage 校验扩展名、大小与真实 MIME 后写入暂存目录
func (s *AssetStager) Stage(file io.ReadSeeker, filename string, size int64) (authoring.PendingAsset, error) {
	if !util.HasAllowedExtension(filename, util.AllowedImageExtensions) {
		return authoring.PendingAsset{}, ErrUnsupportedImage
	}
	if size > s.MaxBytes {
		return authoring.PendingAsset{}, ErrImageTooLarge
	}

	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage})
	if err != nil {
		return authoring.PendingAsset{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return authoring.PendingAsset{}, err
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return authoring.PendingAsset{}, err
	}
	dst := filepath.Join(s.Dir, uuid.New().String()+strings.ToLower(filepath.Ext(filename)))
	out, err := os.Create(dst)
	if err != nil {
		return authoring.PendingAsset{}, err
	}
	defer out.Close()

	// 多读 1 字节以识别超限文件
	written, err := io.Copy(out, io.LimitReader(file, s.MaxBytes+1))
	if err != nil {
		os.Remove(dst)
		return authoring.PendingAsset{}, err
	}
	if written > s.MaxBytes {
		os.Remove(dst)
		return authoring.PendingAsset{}, ErrImageTooLarge
	}

	return authoring.PendingAsset{
		Path:        dst,
		FileName:    filepath.Base(filename),
		ContentType: mimeType,
		Size:        written,
	}, nil
}

// Discard 删除暂存文件，文件不存在时忽略
func (s *AssetStager) Discard(p authoring.PendingAsset) error {
	if p.Path == "" {
		return nil
	}
	if err := os.Remove(p.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
