package model

import "time"

type Post struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"post_id"`
	UserID        uint64    `gorm:"column:user_id;index;not null" json:"user_id"`
	MaterialID    uint64    `gorm:"column:material_id;index;not null" json:"material_id"`
	Quantity      float64   `gorm:"not null" json:"quantity"`
	Unit          string    `gorm:"size:32;not null" json:"unit"`
	Condition     string    `gorm:"column:condition_status;size:64" json:"condition_status"`
	Description   string    `gorm:"type:text" json:"description"`
	Price         float64   `gorm:"not null" json:"price"`
	Location      string    `gorm:"size:255" json:"location"`
	AvailableDate string    `gorm:"column:available_date;size:32" json:"available_date"`
	ImagePath     *string   `gorm:"column:image_path;size:512" json:"image_path,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

// PostDetail is the read shape for post listings: the post row joined with
// its material and the owner's display name.
type PostDetail struct {
	Post
	MaterialName     string `json:"material_name"`
	MaterialCategory string `json:"material_category"`
	UserName         string `json:"user_name"`
}
