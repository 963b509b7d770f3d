package service

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/inklog/internal/db"
	"gorm.io/gorm"
)

const feedItemLimit = 20

// FeedService 基于已发布文章生成 RSS 2.0 订阅源。
type FeedService struct {
	db       *gorm.DB
	settings *SystemSettingService
}

// NewFeedService creates a FeedService instance.
func NewFeedService(gdb *gorm.DB, settings *SystemSettingService) *FeedService {
	return &FeedService{db: gdb, settings: settings}
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Build 生成订阅源字节流。仅包含已发布文章，按更新时间倒序，最多 feedItemLimit 条。
func (s *FeedService) Build(baseURL string) ([]byte, error) {
	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, err
	}

	var posts []db.Post
	if err := s.db.Where("published = ?", true).
		Order("updated_at desc, id desc").
		Limit(feedItemLimit).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	items := make([]rssItem, 0, len(posts))
	for _, post := range posts {
		description := strings.TrimSpace(post.Excerpt)
		if description == "" {
			description = RenderMarkdown(post.Content)
		}

		link := fmt.Sprintf("%s/posts/%s", base, post.Slug)
		items = append(items, rssItem{
			Title:       post.Title,
			Link:        link,
			GUID:        link,
			Description: description,
			PubDate:     post.UpdatedAt.UTC().Format(time.RFC1123Z),
		})
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       settings.SiteName,
			Link:        base,
			Description: settings.SiteDescription,
			Items:       items,
		},
	}

	payload, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), payload...), nil
}
