// 为本地调试签发管理后台 JWT。
//
// 用法: go run ./scripts/issue_token -user 1 -role admin -email admin@example.com
package main

import (
	"course_admin_backend/internal/config"
	"course_admin_backend/internal/model"
	"course_admin_backend/internal/util"
	"flag"
	"fmt"
	"log"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	userID := flag.Uint("user", 1, "用户ID")
	role := flag.String("role", string(model.Instructor), "角色: instructor / admin")
	email := flag.String("email", "", "邮箱")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret 未配置")
	}

	r := model.UserRole(*role)
	if !r.CanAuthor() {
		log.Fatalf("不支持的角色: %s", *role)
	}

	token, err := util.GenerateJWT(*userID, r, *email, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	if err != nil {
		log.Fatalf("签发失败: %v", err)
	}
	fmt.Println(token)
}
