package domain

import (
	"io"
	"net/mail"
	"path/filepath"
	"strings"
	"time"

	"campus_lost_found/pkg"
	errprocess "campus_lost_found/pkg/err"
)

// ItemStatus definition item status
type ItemStatus string

const (
	// ItemLost reported as lost
	ItemLost ItemStatus = "lost"
	// ItemFound reported as found
	ItemFound ItemStatus = "found"
)

// FilterAll no constraint on a filter dimension
const FilterAll = "All"

// Categories selectable item categories
var Categories = []string{"ID Card", "Wallet", "Phone", "Keys", "Books", "Electronics", "Clothing", "Others"}

// ParseStatus case-insensitive match against lost / found
func ParseStatus(s string) (ItemStatus, error) {
	switch ItemStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ItemLost:
		return ItemLost, nil
	case ItemFound:
		return ItemFound, nil
	}
	return "", errprocess.Wrap(errprocess.ErrValidation, "status must be lost or found, got %q", s)
}

// Item 定義 失物/拾獲 模型
type Item struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string     `gorm:"type:text;index;not null" json:"user_id"`
	Title        string     `gorm:"not null" json:"title"`
	Category     string     `gorm:"index;not null" json:"category"`
	Description  *string    `json:"description"`
	Status       ItemStatus `gorm:"type:text;index;not null" json:"status"`
	Location     string     `gorm:"not null" json:"location"`
	ItemDate     time.Time  `gorm:"type:date;not null" json:"item_date"`
	ImageURL     *string    `json:"image_url"`
	ContactEmail string     `gorm:"not null" json:"contact_email"`
	IsResolved   bool       `gorm:"not null;default:false;index" json:"is_resolved"`
	SuccessStory *string    `json:"success_story"`
	ResolvedAt   *time.Time `json:"resolved_at"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ItemFilter list filter, "All" / "" = 不限制
type ItemFilter struct {
	Status   string `query:"status"`
	Category string `query:"category"`
	Search   string `query:"search"`
}

// Normalize trim, 去掉 All, status 轉小寫
func (f ItemFilter) Normalize() ItemFilter {
	norm := func(s string) string {
		s = strings.TrimSpace(s)
		if strings.EqualFold(s, FilterAll) {
			return ""
		}
		return s
	}
	out := ItemFilter{
		Status:   strings.ToLower(norm(f.Status)),
		Category: norm(f.Category),
		Search:   strings.TrimSpace(f.Search),
	}
	return out
}

// Validate normalized filter only
func (f ItemFilter) Validate() error {
	if f.Status != "" {
		if _, err := ParseStatus(f.Status); err != nil {
			return err
		}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern 把 search 轉成 %...% 並跳脫萬用字元
func LikePattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

// CreateItemReq usecase create item request
type CreateItemReq struct {
	Title        string       `json:"title" form:"title"`
	Category     string       `json:"category" form:"category"`
	Description  string       `json:"description" form:"description"`
	Status       string       `json:"status" form:"status"`
	Location     string       `json:"location" form:"location"`
	ItemDate     string       `json:"item_date" form:"item_date"`
	ContactEmail string       `json:"contact_email" form:"contact_email"`
	ImageURL     string       `json:"image_url" form:"image_url"`
	Image        *ImageUpload `json:"-" form:"-"`
}

// ItemDateLayout item_date format
const ItemDateLayout = "2006-01-02"

// ToItem validate and build the record, id / owner set by caller
func (r CreateItemReq) ToItem() (*Item, error) {
	title := strings.TrimSpace(r.Title)
	location := strings.TrimSpace(r.Location)
	email := strings.TrimSpace(r.ContactEmail)

	switch {
	case title == "":
		return nil, errprocess.Wrap(errprocess.ErrValidation, "title is required")
	case location == "":
		return nil, errprocess.Wrap(errprocess.ErrValidation, "location is required")
	case email == "":
		return nil, errprocess.Wrap(errprocess.ErrValidation, "contact_email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "contact_email is not a valid address")
	}
	if !pkg.Contains(Categories, r.Category) {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "unknown category %q", r.Category)
	}
	status, err := ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(ItemDateLayout, strings.TrimSpace(r.ItemDate))
	if err != nil {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "item_date must be YYYY-MM-DD")
	}

	it := &Item{
		Title:        title,
		Category:     r.Category,
		Status:       status,
		Location:     location,
		ItemDate:     date,
		ContactEmail: email,
	}
	if d := strings.TrimSpace(r.Description); d != "" {
		it.Description = &d
	}
	if u := strings.TrimSpace(r.ImageURL); u != "" {
		it.ImageURL = &u
	}
	return it, nil
}

// ImageUpload image file from multipart
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

// AllowedImageExt 允許的副檔名
var AllowedImageExt = []string{"png", "jpg", "jpeg", "gif", "webp"}

// Ext lower case extension without dot
func (u ImageUpload) Ext() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(u.FileName), "."))
}

// Validate size and extension
func (u ImageUpload) Validate(maxBytes int64) error {
	if u.File == nil {
		return errprocess.Wrap(errprocess.ErrValidation, "image file is required")
	}
	if !pkg.Contains(AllowedImageExt, u.Ext()) {
		return errprocess.Wrap(errprocess.ErrValidation, "image type %q not allowed", u.Ext())
	}
	if u.Size <= 0 {
		return errprocess.Wrap(errprocess.ErrValidation, "image is empty")
	}
	if maxBytes > 0 && u.Size > maxBytes {
		return errprocess.Wrap(errprocess.ErrValidation, "image exceeds %d bytes", maxBytes)
	}
	return nil
}

// ItemStats totals for the home page
type ItemStats struct {
	Total    int64 `json:"total"`
	Lost     int64 `json:"lost"`
	Found    int64 `json:"found"`
	Resolved int64 `json:"resolved"`
}
