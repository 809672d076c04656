package models

import (
	"time"

	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
)

type FacebookAccount struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	UserID   int64  `gorm:"column:user_id;not null;index"`
	FBUserID string `gorm:"column:fb_user_id;not null"`
	FBName   string `gorm:"column:fb_name;not null"`
}

// FacebookPage keeps the page access token as ciphertext only.
type FacebookPage struct {
	ID                int64            `gorm:"column:id;primaryKey;autoIncrement"`
	UserID            int64            `gorm:"column:user_id;not null;index"`
	FacebookAccountID int64            `gorm:"column:facebook_account_id;not null;index"`
	FacebookAccount   *FacebookAccount `gorm:"foreignKey:FacebookAccountID"`
	PageID            string           `gorm:"column:page_id;not null"`
	PageName          string           `gorm:"column:page_name;not null"`
	PageAccessToken   string           `gorm:"column:page_access_token;not null"`
	Category          string           `gorm:"column:category;not null"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
}

type FacebookPost struct {
	ID             int64            `gorm:"column:id;primaryKey;autoIncrement"`
	FacebookPageID int64            `gorm:"column:facebook_page_id;not null;index"`
	FacebookPage   *FacebookPage    `gorm:"foreignKey:FacebookPageID;constraint:OnDelete:CASCADE"`
	ProductID      int64            `gorm:"column:product_id;not null;index"`
	Product        *Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	FBPostID       string           `gorm:"column:fb_post_id;not null;default:''"`
	Status         enums.PostStatus `gorm:"column:status;not null"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
}
