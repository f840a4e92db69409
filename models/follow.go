package models

import (
	"errors"

	"yatube/db"

	"gorm.io/gorm/clause"
)

// Follow is a directed "user reads author" edge. The composite primary
// key makes the pair unique at the storage layer, so two concurrent
// creates for the same pair cannot produce duplicate edges.
type Follow struct {
	CreatedAt int64
	UserID    uint64 `gorm:"primaryKey;autoIncrement:false"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint64 `gorm:"primaryKey;autoIncrement:false"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

var ErrSelfFollow = errors.New("cannot follow yourself")

// FollowCreate is idempotent: following an already-followed author is a
// no-op success (insert-or-ignore at the unique key).
func FollowCreate(userID, authorID uint64) error {
	if userID == authorID {
		return ErrSelfFollow
	}
	follow := Follow{UserID: userID, AuthorID: authorID}
	return db.Instance.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
}

// FollowDelete is idempotent: removing a missing edge is a success.
func FollowDelete(userID, authorID uint64) error {
	return db.Instance.Delete(&Follow{}, "user_id = ? and author_id = ?", userID, authorID).Error
}

func FollowedAuthorIDs(userID uint64) ([]uint64, error) {
	ids := []uint64{}
	err := db.Instance.Model(&Follow{}).Where("user_id = ?", userID).Pluck("author_id", &ids).Error
	return ids, err
}

func IsFollowing(userID, authorID uint64) bool {
	var count int64
	db.Instance.Model(&Follow{}).
		Where("user_id = ? and author_id = ?", userID, authorID).Count(&count)
	return count > 0
}
