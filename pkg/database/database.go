package database

import (
	"course_admin_backend/internal/config"
	"course_admin_backend/internal/model"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultCategories 首次部署时写入的分类
var DefaultCategories = []model.Category{
	{Label: "Programming", Value: "programming", Sort: 1, Enabled: true},
	{Label: "Data Science", Value: "data-science", Sort: 2, Enabled: true},
	{Label: "Design", Value: "design", Sort: 3, Enabled: true},
	{Label: "Business", Value: "business", Sort: 4, Enabled: true},
	{Label: "Language", Value: "language", Sort: 5, Enabled: true},
}

func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)
}

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(DSN(&cfg.Database)), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	// release 模式下默认跳过迁移，除非通过 -migrate 显式开启
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		if _, err := SeedCategories(db, DefaultCategories); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Course{}, &model.Category{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedCategories 按 value 去重插入分类，返回新增条数
func SeedCategories(db *gorm.DB, categories []model.Category) (int, error) {
	created := 0
	for _, c := range categories {
		var count int64
		if err := db.Model(&model.Category{}).Where("value = ?", c.Value).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		c := c
		if err := db.Create(&c).Error; err != nil {
			return created, fmt.Errorf("seed category %s: %w", c.Value, err)
		}
		// enabled 列默认为 true，零值需要单独写入
		if !c.Enabled {
			if err := db.Model(&c).Update("enabled", false).Error; err != nil {
				return created, err
			}
		}
		created++
	}
	return created, nil
}
