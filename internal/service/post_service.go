package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inklog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrTitleRequired      = errors.New("post title is required")
	ErrContentRequired    = errors.New("post content is required")
	ErrSlugRequired       = errors.New("post slug is required")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrPreconditionFailed = errors.New("no default author provisioned")
)

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostFilter describes filters for listing posts.
type PostFilter struct {
	Search     string
	Status     string
	CategoryID *uint
	Page       int
	PerPage    int
}

// PostListResult aggregates paginated list data and counters.
type PostListResult struct {
	Posts          []db.Post
	Total          int64
	PublishedCount int64
	DraftCount     int64
	TotalPages     int
	Page           int
	PerPage        int
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title      string
	Content    string
	Excerpt    string
	CategoryID *uint
	Published  bool
	UserID     uint
}

// DraftInput 描述外部自动化客户端投递草稿时的字段，slug 由调用方指定。
type DraftInput struct {
	Slug     string
	Title    string
	Content  string
	Excerpt  string
	Category string
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// Create 新建文章。slug 由标题派生，并在行创建后追加数字 ID 以保证唯一；
// 临时 slug 只存在于事务内部，对外不可见。
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrContentRequired
	}

	post := db.Post{
		Title:      title,
		Slug:       "pending-" + uuid.NewString(),
		Content:    input.Content,
		Excerpt:    strings.TrimSpace(input.Excerpt),
		Published:  input.Published,
		CategoryID: input.CategoryID,
		UserID:     input.UserID,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		post.Slug = uniqueSlug(Slugify(title), post.ID)
		return tx.Model(&db.Post{}).Where("id = ?", post.ID).Update("slug", post.Slug).Error
	}); err != nil {
		return nil, err
	}

	return &post, nil
}

// Get fetches a post by id with category and author preloaded.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.Preload("Category").Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPublishedBySlug 按 slug 获取已发布文章，草稿按不存在处理。
func (s *PostService) GetPublishedBySlug(slug string) (*db.Post, error) {
	var post db.Post
	if err := s.db.Preload("Category").Preload("User").
		Where("slug = ? AND published = ?", slug, true).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Update applies updates to an existing post. 标题变化时按原规则重算 slug，
// 追加的仍是已有 ID，因此 slug 在多次编辑之间保持稳定。
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrContentRequired
	}

	if title != existing.Title {
		existing.Slug = uniqueSlug(Slugify(title), existing.ID)
	}
	existing.Title = title
	existing.Content = input.Content
	existing.Excerpt = strings.TrimSpace(input.Excerpt)
	existing.CategoryID = input.CategoryID

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}

	return &existing, nil
}

// Delete removes a post by id. 硬删除，不保留软删除墓碑；评论由外键级联清理。
func (s *PostService) Delete(id uint) error {
	result := s.db.Unscoped().Delete(&db.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// SetPublished 切换发布状态并刷新 UpdatedAt，slug 不受影响。
func (s *PostService) SetPublished(id uint, published bool) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&post).Update("published", published).Error; err != nil {
		return nil, err
	}

	return &post, nil
}

// IncrementViews 累加浏览计数。UpdateColumn 不触碰 UpdatedAt。
func (s *PostService) IncrementViews(id uint) error {
	return s.db.Model(&db.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// List provides paginated posts with aggregated counters based on filters.
// 后台列表使用，包含草稿。
func (s *PostService) List(filter PostFilter) (*PostListResult, error) {
	result := &PostListResult{Page: filter.Page, PerPage: filter.PerPage}
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.PerPage <= 0 {
		result.PerPage = 10
	}

	countQuery := s.applyFilters(s.db.Model(&db.Post{}), filter, true)
	if err := countQuery.Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.Page - 1) * result.PerPage

	var posts []db.Post
	dataQuery := s.db.Model(&db.Post{}).Preload("Category").Preload("User")
	dataQuery = s.applyFilters(dataQuery, filter, true)
	if err := dataQuery.Order("posts.created_at desc, posts.id desc").
		Limit(result.PerPage).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	filterWithoutStatus := filter
	filterWithoutStatus.Status = ""

	baseCounter := s.applyFilters(s.db.Model(&db.Post{}), filterWithoutStatus, false)
	if err := baseCounter.Where("posts.published = ?", true).Count(&result.PublishedCount).Error; err != nil {
		return nil, err
	}
	if err := baseCounter.Where("posts.published = ?", false).Count(&result.DraftCount).Error; err != nil {
		return nil, err
	}

	if result.Total == 0 {
		result.TotalPages = 1
	} else {
		result.TotalPages = int((result.Total + int64(result.PerPage) - 1) / int64(result.PerPage))
	}

	result.Posts = posts
	return result, nil
}

// ListPublished 返回公开列表，严格限定 published = true。
// 搜索为大小写不敏感的子串匹配，空查询返回完整的已发布列表，无命中返回空集而非错误。
func (s *PostService) ListPublished(filter PostFilter) (*PostListResult, error) {
	filter.Status = "published"
	return s.List(filter)
}

func (s *PostService) applyFilters(query *gorm.DB, filter PostFilter, includeStatus bool) *gorm.DB {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"lower(posts.title) LIKE ? OR lower(posts.content) LIKE ? OR lower(posts.excerpt) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if filter.CategoryID != nil {
		query = query.Where("posts.category_id = ?", *filter.CategoryID)
	}

	if includeStatus {
		switch strings.ToLower(strings.TrimSpace(filter.Status)) {
		case "published":
			query = query.Where("posts.published = ?", true)
		case "draft":
			query = query.Where("posts.published = ?", false)
		}
	}

	return query
}

// DraftUpsert 供外部自动化客户端按 slug 创建或更新草稿。
// 写入是单条 ON CONFLICT 原子 upsert，不存在先查后写的竞争窗口。
// 默认作者必须已由启动期种子流程创建，否则返回 ErrPreconditionFailed。
func (s *PostService) DraftUpsert(input DraftInput) (*db.Post, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrContentRequired
	}

	var author db.User
	if err := s.db.Order("id asc").First(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPreconditionFailed
		}
		return nil, err
	}

	var categoryID *uint
	if name := strings.TrimSpace(input.Category); name != "" {
		var category db.Category
		if err := s.db.Where("name = ?", name).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		categoryID = &category.ID
	}

	excerpt := strings.TrimSpace(input.Excerpt)
	post := db.Post{
		Title:      title,
		Slug:       slug,
		Content:    input.Content,
		Excerpt:    excerpt,
		Published:  false,
		CategoryID: categoryID,
		UserID:     author.ID,
	}

	// 已存在的行只更新内容字段，发布状态保持不变
	assignments := map[string]interface{}{
		"title":      title,
		"content":    input.Content,
		"excerpt":    excerpt,
		"updated_at": time.Now(),
	}
	if categoryID != nil {
		assignments["category_id"] = *categoryID
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&post).Error; err != nil {
		return nil, err
	}

	var saved db.Post
	if err := s.db.Preload("Category").Where("slug = ?", slug).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// Publish 将指定 slug 的文章切换为已发布。slug 不存在时返回 ErrPostNotFound 且无任何写入。
// publishedAt 仅作为回显值，权威时间戳是 UpdatedAt。
func (s *PostService) Publish(slug string, publishedAt *time.Time) (*db.Post, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, ErrSlugRequired
	}

	var post db.Post
	if err := s.db.Where("slug = ?", trimmed).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&post).Update("published", true).Error; err != nil {
		return nil, err
	}

	return &post, nil
}
