package models

import (
	"time"

	"yatube/db"
)

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"index:post_order,priority:2"`
	PostID    uint64 `gorm:"index:post_order,priority:1"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint64
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string `gorm:"type:text"`
}

func (c Comment) CreatedTime() time.Time {
	return time.Unix(c.CreatedAt, 0)
}

func CommentCreate(postID, userID uint64, text string) (c Comment, err error) {
	c = Comment{PostID: postID, UserID: userID, Text: text}
	err = db.Instance.Create(&c).Error
	return
}

func CommentsForPost(postID uint64) (comments []Comment, err error) {
	err = db.Instance.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").Find(&comments).Error
	return
}
