package service

import (
	"errors"
	"testing"
)

func TestCategoryService_CreateRejectsDuplicateName(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	svc := NewCategoryService(gdb)

	if _, err := svc.Create("工程", "技术笔记"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.Create("工程", "重复"); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if _, err := svc.Create("  ", ""); !errors.Is(err, ErrCategoryNameRequired) {
		t.Fatalf("expected ErrCategoryNameRequired, got %v", err)
	}
}

func TestCategoryService_UpdateChecksDuplicates(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	svc := NewCategoryService(gdb)

	first, err := svc.Create("工程", "")
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := svc.Create("随笔", ""); err != nil {
		t.Fatalf("create second: %v", err)
	}

	if _, err := svc.Update(first.ID, "随笔", ""); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}

	// 名字不变只改描述是允许的
	updated, err := svc.Update(first.ID, "工程", "新描述")
	if err != nil {
		t.Fatalf("update description: %v", err)
	}
	if updated.Description != "新描述" {
		t.Fatalf("description not updated: %q", updated.Description)
	}

	if _, err := svc.Update(9999, "x", ""); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_DeleteRefusesWhenReferenced(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	svc := NewCategoryService(gdb)
	user := createPostAuthor(t, gdb)

	category, err := svc.Create("工程", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	if _, err := NewPostService(gdb).Create(PostInput{Title: "引用分类", Content: "正文", UserID: user.ID, CategoryID: &category.ID}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	empty, err := svc.Create("空分类", "")
	if err != nil {
		t.Fatalf("create empty category: %v", err)
	}
	if err := svc.Delete(empty.ID); err != nil {
		t.Fatalf("delete empty category: %v", err)
	}
	if err := svc.Delete(empty.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound after delete, got %v", err)
	}
}

func TestCategoryService_PublishedUsageCountsPublishedOnly(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	svc := NewCategoryService(gdb)
	posts := NewPostService(gdb)
	user := createPostAuthor(t, gdb)

	category, err := svc.Create("工程", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	if _, err := posts.Create(PostInput{Title: "已发布", Content: "正文", UserID: user.ID, CategoryID: &category.ID, Published: true}); err != nil {
		t.Fatalf("create published post: %v", err)
	}
	if _, err := posts.Create(PostInput{Title: "草稿", Content: "正文", UserID: user.ID, CategoryID: &category.ID}); err != nil {
		t.Fatalf("create draft post: %v", err)
	}

	usage, err := svc.PublishedUsage()
	if err != nil {
		t.Fatalf("published usage: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("expected 1 category, got %d", len(usage))
	}
	if usage[0].Count != 1 {
		t.Fatalf("expected published count 1, got %d", usage[0].Count)
	}
}
