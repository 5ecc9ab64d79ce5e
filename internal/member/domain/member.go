package domain

import (
	"strings"
	"time"

	"campus_lost_found/pkg/encrypt"
	errprocess "campus_lost_found/pkg/err"
)

// MemberStatus 用來表示使用者狀態
type MemberStatus int

// 状态: 0=offline, 1=online, 2=ban ,3=delete
const (
	// MemberStatusOffLine 使用者離線
	MemberStatusOffLine MemberStatus = iota
	// MemberStatusOnLine 使用者在線
	MemberStatusOnLine
	// MemberStatusBan 使用者被封鎖
	MemberStatusBan
	// MemberStatusDelete 使用者已刪除
	MemberStatusDelete
)

// Member 用來表示使用者
type Member struct {
	ID        int64
	MemberID  string
	Email     string
	Password  string
	FullName  string
	Status    MemberStatus
	CreatedAt time.Time
}

// MemberSession 用來表示使用者的 Session
type MemberSession struct {
	Token        string    `json:"Token"`
	MemberID     string    `json:"MemberID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsPasswordMatch 密碼驗證
func (m *Member) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(m.Password, inputPwd)
}

// Profile 對外公開的使用者資料
func (m *Member) Profile() Profile {
	return Profile{UserID: m.MemberID, Email: m.Email, FullName: m.FullName}
}

// MemberQuery join conditions are used to query members
type MemberQuery struct {
	ID       *int64  `db:"id"`
	MemberID *string `db:"member_id"`
	Email    *string `db:"email"`
}

// Profile definition display info of a member
type Profile struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// DisplayName full name → email → id, never empty when id is set
func (p Profile) DisplayName() string {
	return DisplayName(p.FullName, p.Email, p.UserID)
}

// DisplayName pick the first non blank value
func DisplayName(fullName, email, id string) string {
	if n := strings.TrimSpace(fullName); n != "" {
		return n
	}
	if e := strings.TrimSpace(email); e != "" {
		return e
	}
	return id
}

// Viewer definition the signed in identity passed into every operation
type Viewer struct {
	MemberID string
	Email    string
}

// IsAnonymous no signed in member
func (v Viewer) IsAnonymous() bool {
	return strings.TrimSpace(v.MemberID) == ""
}

// Require return ErrUnauthorized for anonymous viewer
func (v Viewer) Require() error {
	if v.IsAnonymous() {
		return errprocess.Wrap(errprocess.ErrUnauthorized, "sign in required")
	}
	return nil
}
