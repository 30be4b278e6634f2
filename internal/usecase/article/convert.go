package article

import (
	"strings"

	"article-inventory/internal/domain/entity"
	"article-inventory/internal/repository"
)

func toEntity(rec *repository.ArticleRecord) *entity.Article {
	if rec == nil {
		return nil
	}
	return &entity.Article{
		ID:         rec.ID,
		Name:       rec.Name,
		Brand:      rec.Brand,
		ModifiedAt: rec.ModifiedAt,
		IsActive:   normalizeFlag(rec.IsActive),
	}
}

// normalizeFlag turns a stored boolean into a bool. Drivers return BOOLEAN
// columns as bool, integers, or the text "1"/"0" depending on the dialect.
func normalizeFlag(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int64:
		return x != 0
	case int:
		return x != 0
	case []byte:
		return isTrueText(string(x))
	case string:
		return isTrueText(x)
	default:
		return false
	}
}

func isTrueText(s string) bool {
	s = strings.TrimSpace(s)
	return s == "1" || strings.EqualFold(s, "true")
}
