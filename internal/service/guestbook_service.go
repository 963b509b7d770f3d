package service

import (
	"errors"
	"strings"

	"github.com/inklog/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEntryNotFound        = errors.New("guestbook entry not found")
	ErrEntryContentRequired = errors.New("guestbook content is required")
	ErrEntryNameRequired    = errors.New("guestbook name is required")
)

// GuestbookService 管理留言板条目，删除凭证与评论一致。
type GuestbookService struct {
	db *gorm.DB
}

// GuestbookInput represents fields accepted when leaving a guestbook entry.
type GuestbookInput struct {
	Name     string
	Content  string
	Password string
}

// NewGuestbookService creates a GuestbookService instance.
func NewGuestbookService(gdb *gorm.DB) *GuestbookService {
	return &GuestbookService{db: gdb}
}

// List returns guestbook entries, newest first.
func (s *GuestbookService) List() ([]db.GuestbookEntry, error) {
	var entries []db.GuestbookEntry
	if err := s.db.Order("created_at desc, id desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Create 创建留言，口令仅保存 bcrypt 哈希。
func (s *GuestbookService) Create(input GuestbookInput) (*db.GuestbookEntry, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEntryNameRequired
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrEntryContentRequired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	entry := db.GuestbookEntry{
		Name:     name,
		Content:  input.Content,
		Password: string(hashed),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete 按口令删除留言。
func (s *GuestbookService) Delete(id uint, password string) error {
	entry, err := s.find(id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(entry.Password), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}

	return s.db.Unscoped().Delete(entry).Error
}

// DeleteAsAdmin 管理员删除留言，无需口令。
func (s *GuestbookService) DeleteAsAdmin(id uint) error {
	entry, err := s.find(id)
	if err != nil {
		return err
	}
	return s.db.Unscoped().Delete(entry).Error
}

func (s *GuestbookService) find(id uint) (*db.GuestbookEntry, error) {
	var entry db.GuestbookEntry
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}
