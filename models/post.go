package models

import (
	"time"

	"yatube/db"
)

type Post struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"index:author_order,priority:2"`
	UpdatedAt int64
	UserID    uint64 `gorm:"index:author_order,priority:1"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint64
	Group     *Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Text      string `gorm:"type:text"`
	ImagePath string `gorm:"type:varchar(200)"`
	ThumbPath string `gorm:"type:varchar(200)"`
}

func (p Post) CreatedTime() time.Time {
	return time.Unix(p.CreatedAt, 0)
}

// All listings share one ordering key so that pagination is stable
// under concurrent inserts
const postOrder = "posts.created_at DESC, posts.id DESC"

func PostsAll() (posts []Post, err error) {
	err = db.Instance.Preload("User").Preload("Group").
		Order(postOrder).Find(&posts).Error
	return
}

func PostsByGroup(groupID uint64) (posts []Post, err error) {
	err = db.Instance.Preload("User").Preload("Group").
		Where("group_id = ?", groupID).
		Order(postOrder).Find(&posts).Error
	return
}

func PostsByAuthor(authorID uint64) (posts []Post, err error) {
	err = db.Instance.Preload("User").Preload("Group").
		Where("user_id = ?", authorID).
		Order(postOrder).Find(&posts).Error
	return
}

func PostsByAuthorIDs(authorIDs []uint64) (posts []Post, err error) {
	if len(authorIDs) == 0 {
		return []Post{}, nil
	}
	err = db.Instance.Preload("User").Preload("Group").
		Where("user_id IN ?", authorIDs).
		Order(postOrder).Find(&posts).Error
	return
}

func PostByID(id uint64) (p Post, err error) {
	err = db.Instance.Preload("User").Preload("Group").First(&p, id).Error
	return
}
