package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inklog/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials 对"用户不存在"与"密码错误"保持同一错误，避免泄漏账号是否存在。
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthenticated 表示缺失、伪造或已过期的会话。
	ErrUnauthenticated = errors.New("unauthenticated")
)

// SessionTTL 为会话的绝对有效期，不做滑动续期。
const SessionTTL = 24 * time.Hour

// AuthService 负责管理员会话的签发、校验与注销。
type AuthService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAuthService creates an AuthService instance.
func NewAuthService(gdb *gorm.DB) *AuthService {
	return &AuthService{db: gdb, now: time.Now}
}

// SetNowFunc 覆盖时间源，仅用于测试过期逻辑。
func (s *AuthService) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Login 校验用户名密码，成功后创建会话并返回不透明 token。
func (s *AuthService) Login(username, password string) (string, error) {
	var user db.User
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	session := db.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(SessionTTL),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return "", err
	}

	return session.Token, nil
}

// Validate 将 token 解析为管理员账号。过期会话不会被续期，校验本身没有副作用。
func (s *AuthService) Validate(token string) (*db.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrUnauthenticated
	}

	var session db.Session
	if err := s.db.Preload("User").Where("token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if session.Expired(s.now()) {
		return nil, ErrUnauthenticated
	}

	return &session.User, nil
}

// Logout 删除会话，幂等：token 不存在时同样视为成功。
func (s *AuthService) Logout(token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.db.Unscoped().Where("token = ?", token).Delete(&db.Session{}).Error
}
