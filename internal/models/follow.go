package models

import "time"

// Follow is a directed edge from a subscriber (UserID) to an author.
type Follow struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_follow_user_author;check:chk_follow_not_self,user_id <> author_id"`
	AuthorID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_follow_user_author;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
