// 按 YAML 文件写入课程分类，已存在的 value 会跳过。
//
// 用法: go run ./scripts/seed_categories -file configs/categories.yaml
package main

import (
	"course_admin_backend/internal/config"
	"course_admin_backend/internal/model"
	"course_admin_backend/pkg/database"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type categoryFile struct {
	Categories []struct {
		Label   string `yaml:"label"`
		Value   string `yaml:"value"`
		Sort    int    `yaml:"sort"`
		Enabled *bool  `yaml:"enabled"`
	} `yaml:"categories"`
}

// parseCategories 未写 enabled 的分类默认启用
func parseCategories(data []byte) ([]model.Category, error) {
	var f categoryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(f.Categories))
	out := make([]model.Category, 0, len(f.Categories))
	for i, c := range f.Categories {
		value := strings.TrimSpace(c.Value)
		if value == "" || strings.TrimSpace(c.Label) == "" {
			return nil, fmt.Errorf("category #%d: label and value are required", i+1)
		}
		if seen[value] {
			return nil, fmt.Errorf("category #%d: duplicate value %q", i+1, value)
		}
		seen[value] = true
		out = append(out, model.Category{
			Label:   strings.TrimSpace(c.Label),
			Value:   value,
			Sort:    c.Sort,
			Enabled: c.Enabled == nil || *c.Enabled,
		})
	}
	return out, nil
}

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	file := flag.String("file", "configs/categories.yaml", "分类定义文件")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取分类文件: %v", err)
	}
	categories, err := parseCategories(data)
	if err != nil {
		log.Fatalf("解析分类文件失败: %v", err)
	}

	db, err := gorm.Open(mysql.Open(database.DSN(&cfg.Database)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	created, err := database.SeedCategories(db, categories)
	if err != nil {
		log.Fatalf("写入分类失败: %v", err)
	}
	log.Printf("完成！新增 %d 个分类，跳过 %d 个", created, len(categories)-created)
}
