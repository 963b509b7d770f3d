package db

import (
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func initTestDB(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inklog-test.db")
	if err := Init(path); err != nil {
		t.Fatalf("init database: %v", err)
	}
	t.Cleanup(func() { DB = nil })
}

func TestInitMigratesSchema(t *testing.T) {
	initTestDB(t)

	for _, table := range []string{
		"users", "sessions", "categories", "posts", "comments",
		"ad_settings", "about_contents", "guestbook_entries", "system_settings",
	} {
		if !DB.Migrator().HasTable(table) {
			t.Fatalf("table %q not migrated", table)
		}
	}

	// 文章删除依赖外键级联，必须启用
	var enabled int
	if err := DB.Raw("PRAGMA foreign_keys").Scan(&enabled).Error; err != nil {
		t.Fatalf("read foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Fatal("foreign key enforcement is off")
	}
}

func TestForeignKeysApplyToEveryPooledConnection(t *testing.T) {
	initTestDB(t)

	user := User{Username: "author", Password: "x"}
	if err := DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	post := Post{Title: "t", Slug: "t-1", Content: "c", UserID: user.ID}
	if err := DB.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := DB.Create(&Comment{Content: "c", Name: "n", Password: "p", PostID: post.ID}).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}

	// 丢弃空闲连接，后续语句一定跑在池里新开的连接上；
	// 外键开关写在 DSN 里，新连接也必须带着它
	sqlDB, err := DB.DB()
	if err != nil {
		t.Fatalf("underlying sql db: %v", err)
	}
	sqlDB.SetMaxIdleConns(0)

	var enabled int
	if err := DB.Raw("PRAGMA foreign_keys").Scan(&enabled).Error; err != nil {
		t.Fatalf("read foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Fatal("fresh pooled connection came up with foreign keys off")
	}

	if err := DB.Unscoped().Delete(&Post{}, post.ID).Error; err != nil {
		t.Fatalf("delete post: %v", err)
	}

	var orphans int64
	if err := DB.Unscoped().Model(&Comment{}).Where("post_id = ?", post.ID).Count(&orphans).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("post delete on a fresh connection left %d orphaned comments", orphans)
	}
}

func TestWithForeignKeys(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain path", "inklog.db", "inklog.db?_foreign_keys=on"},
		{"existing params", "file:x?mode=memory&cache=shared", "file:x?mode=memory&cache=shared&_foreign_keys=on"},
		{"already set", "inklog.db?_foreign_keys=on", "inklog.db?_foreign_keys=on"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := withForeignKeys(tc.in); got != tc.want {
				t.Fatalf("withForeignKeys(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	initTestDB(t)

	if err := EnsureUser("root", "root-password"); err != nil {
		t.Fatalf("ensure user: %v", err)
	}

	var user User
	if err := DB.Where("username = ?", "root").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Password == "root-password" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("root-password")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	// 再次调用不会重复创建，也不会重置密码
	if err := EnsureUser("root", "different-password"); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	var count int64
	if err := DB.Model(&User{}).Where("username = ?", "root").Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one user, got %d", count)
	}
	var reloaded User
	if err := DB.Where("username = ?", "root").First(&reloaded).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.Password != user.Password {
		t.Fatal("password changed by repeated seed")
	}

	// 空凭据直接跳过
	if err := EnsureUser("", ""); err != nil {
		t.Fatalf("ensure with empty credentials: %v", err)
	}
}

func TestEnsureCategoryIsIdempotent(t *testing.T) {
	initTestDB(t)

	if err := EnsureCategory("未分类", "默认分类"); err != nil {
		t.Fatalf("ensure category: %v", err)
	}
	if err := EnsureCategory("未分类", "换个描述"); err != nil {
		t.Fatalf("second ensure: %v", err)
	}

	var count int64
	if err := DB.Model(&Category{}).Where("name = ?", "未分类").Count(&count).Error; err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one category, got %d", count)
	}
}
