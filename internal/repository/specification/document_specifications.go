package specification

import "gorm.io/gorm"

// ByStatus filters documents by processing status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// NameOrContentILike is a case-insensitive keyword match over the document
// name and its extracted text. Used by the simple search path.
type NameOrContentILike struct {
	Term string
}

func (s NameOrContentILike) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Term + "%"
	return db.Where("name ILIKE ? OR content ILIKE ?", pattern, pattern)
}
