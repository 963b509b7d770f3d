package service

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestFeedService_BuildIncludesPublishedOnly(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	posts := NewPostService(gdb)
	settings := NewSystemSettingService(gdb)
	feed := NewFeedService(gdb, settings)
	user := createPostAuthor(t, gdb)

	if _, err := settings.UpdateSettings(SystemSettingsInput{SiteName: "墨迹", SiteDescription: "个人博客"}); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	published, err := posts.Create(PostInput{Title: "已发布", Content: "正文", Excerpt: "摘要", UserID: user.ID, Published: true})
	if err != nil {
		t.Fatalf("create published: %v", err)
	}
	if _, err := posts.Create(PostInput{Title: "草稿", Content: "草稿正文", UserID: user.ID}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	payload, err := feed.Build("https://blog.example.com/")
	if err != nil {
		t.Fatalf("build feed: %v", err)
	}

	var parsed rssFeed
	if err := xml.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("parse feed: %v", err)
	}

	if parsed.Version != "2.0" {
		t.Fatalf("expected rss 2.0, got %q", parsed.Version)
	}
	if parsed.Channel.Title != "墨迹" || parsed.Channel.Description != "个人博客" {
		t.Fatalf("channel metadata wrong: %+v", parsed.Channel)
	}
	if len(parsed.Channel.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(parsed.Channel.Items))
	}

	item := parsed.Channel.Items[0]
	wantLink := "https://blog.example.com/posts/" + published.Slug
	if item.Link != wantLink || item.GUID != wantLink {
		t.Fatalf("expected link %q, got link=%q guid=%q", wantLink, item.Link, item.GUID)
	}
	if item.Description != "摘要" {
		t.Fatalf("expected excerpt as description, got %q", item.Description)
	}
}

func TestFeedService_BuildRendersContentWhenExcerptEmpty(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	posts := NewPostService(gdb)
	feed := NewFeedService(gdb, NewSystemSettingService(gdb))
	user := createPostAuthor(t, gdb)

	if _, err := posts.Create(PostInput{Title: "无摘要", Content: "**bold** text", UserID: user.ID, Published: true}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	payload, err := feed.Build("https://blog.example.com")
	if err != nil {
		t.Fatalf("build feed: %v", err)
	}

	var parsed rssFeed
	if err := xml.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	if len(parsed.Channel.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(parsed.Channel.Items))
	}
	if !strings.Contains(parsed.Channel.Items[0].Description, "<strong>bold</strong>") {
		t.Fatalf("expected rendered markdown, got %q", parsed.Channel.Items[0].Description)
	}
}

func TestFeedService_BuildCapsItemCount(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	posts := NewPostService(gdb)
	feed := NewFeedService(gdb, NewSystemSettingService(gdb))
	user := createPostAuthor(t, gdb)

	for i := 0; i < feedItemLimit+5; i++ {
		if _, err := posts.Create(PostInput{Title: "第" + string(rune('A'+i)) + "篇", Content: "正文", UserID: user.ID, Published: true}); err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
	}

	payload, err := feed.Build("https://blog.example.com")
	if err != nil {
		t.Fatalf("build feed: %v", err)
	}

	var parsed rssFeed
	if err := xml.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	if len(parsed.Channel.Items) != feedItemLimit {
		t.Fatalf("expected %d items, got %d", feedItemLimit, len(parsed.Channel.Items))
	}
}
