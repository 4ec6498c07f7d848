package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	DEFAULT_PAGE_SIZE = 10
	MAX_PAGE_SIZE     = 100
)

type BaseModel struct {
	ID        uint      `json:"id,omitempty" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type Paging struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	LastPage    int   `json:"last_page"`
}

// ---------------------------------------------------------------------------------//
// Scopes
// --------------------------------------------------------------------------------//

func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		page, pageSize = normalizePage(page, pageSize)

		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

// normalizePage falls back to page 1 and DEFAULT_PAGE_SIZE for non-positive
// values, caps the page size at MAX_PAGE_SIZE & caps the page so its offset
// can't overflow.
func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}

	switch {
	case pageSize > MAX_PAGE_SIZE:
		pageSize = MAX_PAGE_SIZE
	case pageSize <= 0:
		pageSize = DEFAULT_PAGE_SIZE
	}

	// Keep the offset of the page within int range
	if page > math.MaxInt/pageSize {
		page = math.MaxInt / pageSize
	}

	return page, pageSize
}

func newPaging(page, pageSize int, total int64) *Paging {
	page, pageSize = normalizePage(page, pageSize)

	return &Paging{
		Total:       total,
		CurrentPage: page,
		PerPage:     pageSize,
		LastPage:    int(math.Ceil(float64(total) / float64(pageSize))),
	}
}
