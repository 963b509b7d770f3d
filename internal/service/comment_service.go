package service

import (
	"errors"
	"strings"

	"github.com/inklog/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound        = errors.New("comment not found")
	ErrCommentContentRequired = errors.New("comment content is required")
	ErrCommentNameRequired    = errors.New("comment name is required")
	ErrPasswordMismatch       = errors.New("password mismatch")
)

// CommentService wraps comment related operations.
type CommentService struct {
	db *gorm.DB
}

// CommentInput represents fields accepted when creating a comment.
type CommentInput struct {
	PostID   uint
	Content  string
	Name     string
	Password string
	ParentID *uint
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// Create 创建公开评论，无需管理员会话。
// 口令是匿名作者之后删除评论的能力凭证，只保存 bcrypt 哈希。
func (s *CommentService) Create(input CommentInput) (*db.Comment, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrCommentContentRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCommentNameRequired
	}

	var post db.Post
	if err := s.db.First(&post, input.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	comment := db.Comment{
		Content:  input.Content,
		Name:     name,
		Password: string(hashed),
		PostID:   post.ID,
		ParentID: input.ParentID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListByPost 返回文章下的全部评论，按创建时间升序，回复的分组交给展示层。
func (s *CommentService) ListByPost(postID uint) ([]db.Comment, error) {
	var comments []db.Comment
	if err := s.db.Where("post_id = ?", postID).
		Order("created_at asc, id asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete 按口令删除评论。顶层评论连同其直接回复在同一个事务内删除，
// 不会出现级联进行到一半的中间状态。
func (s *CommentService) Delete(id uint, password string) error {
	comment, err := s.find(id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(comment.Password), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}

	return s.cascadeDelete(comment)
}

// DeleteAsAdmin 管理员删除评论，无条件执行，会话校验由接口层完成。
func (s *CommentService) DeleteAsAdmin(id uint) error {
	comment, err := s.find(id)
	if err != nil {
		return err
	}
	return s.cascadeDelete(comment)
}

func (s *CommentService) find(id uint) (*db.Comment, error) {
	var comment db.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) cascadeDelete(comment *db.Comment) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Unscoped().
			Where("id = ? OR parent_id = ?", comment.ID, comment.ID).
			Delete(&db.Comment{}).Error
	})
}
