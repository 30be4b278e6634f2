package sqldb

import (
	"strings"

	"article-inventory/internal/domain/entity"
	"article-inventory/internal/repository"
)

// buildFindWhere builds the WHERE clause for Find. like is the dialect's
// substring operator. The clause always starts with "WHERE 1=1" so callers
// can append it unconditionally.
func buildFindWhere(filter repository.ArticleFilter, like string) (clause string, args []any) {
	var sb strings.Builder
	sb.WriteString("WHERE 1=1")

	if filter.Name != nil {
		if filter.ExactMatch {
			sb.WriteString(" AND name = ?")
			args = append(args, *filter.Name)
		} else {
			sb.WriteString(" AND name " + like + " ?")
			args = append(args, "%"+*filter.Name+"%")
		}
	}

	if filter.IsActive != nil {
		sb.WriteString(" AND is_active = ?")
		args = append(args, *filter.IsActive)
	}

	return sb.String(), args
}

// buildUpdateSet returns the SET assignments for the fields present in in,
// followed by the modified_at bump. It returns nil when no field is present.
func buildUpdateSet(in entity.UpdateArticle) (assignments []string, args []any) {
	if in.Name != nil {
		assignments = append(assignments, "name = ?")
		args = append(args, *in.Name)
	}
	if in.Brand != nil {
		assignments = append(assignments, "brand = ?")
		args = append(args, *in.Brand)
	}
	if in.IsActive != nil {
		assignments = append(assignments, "is_active = ?")
		args = append(args, *in.IsActive)
	}
	if len(assignments) == 0 {
		return nil, nil
	}
	return append(assignments, "modified_at = CURRENT_TIMESTAMP"), args
}
