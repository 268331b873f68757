package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the self-referential catalog tree. Level is depth
// from root: root rows have level 0 and a null parent, children are always
// parent.level+1.
type Category struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string     `gorm:"column:name;not null;uniqueIndex:categories_name_key"`
	Slug        string     `gorm:"column:slug;not null;uniqueIndex:categories_slug_key"`
	Description *string    `gorm:"column:description"`
	Image       *string    `gorm:"column:image"`
	ParentID    *uuid.UUID `gorm:"column:parent_id;type:uuid"`
	Parent      *Category  `gorm:"foreignKey:ParentID"`
	Level       int        `gorm:"column:level;not null;default:0"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
