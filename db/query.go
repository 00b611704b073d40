package db

import (
	"fmt"
	"strings"

	"coderr/models"
)

// clauseBuilder собирает WHERE с позиционными параметрами
type clauseBuilder struct {
	conds []string
	args  []any
}

func (b *clauseBuilder) add(format string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(format, len(b.args)))
}

func (b *clauseBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// offerFilter: creator_id, max_delivery_time, поиск по title/description
func offerFilter(q models.OfferQuery) *clauseBuilder {
	b := &clauseBuilder{}
	if q.CreatorID != nil {
		b.add("o.profile_id = $%d", *q.CreatorID)
	}
	if q.MaxDeliveryTime != nil {
		b.add("o.min_delivery_time <= $%d", *q.MaxDeliveryTime)
	}
	if q.Search != "" {
		b.add("(o.title ILIKE $%[1]d OR o.description ILIKE $%[1]d)", "%"+escapeLike(q.Search)+"%")
	}
	return b
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

var offerOrderColumns = map[string]string{
	"min_price":  "o.min_price",
	"updated_at": "o.updated_at",
}

var reviewOrderColumns = map[string]string{
	"rating":     "r.rating",
	"updated_at": "r.updated_at",
}

// orderBy строит ORDER BY из разрешенных колонок; id - в том же направлении для стабильности
func orderBy(ordering string, columns map[string]string, idColumn string) string {
	dir := "ASC"
	field := ordering
	if strings.HasPrefix(ordering, "-") {
		dir = "DESC"
		field = ordering[1:]
	}
	col, ok := columns[field]
	if !ok {
		col, dir = columns["updated_at"], "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, %s %s", col, dir, idColumn, dir)
}

func reviewFilter(q models.ReviewQuery) *clauseBuilder {
	b := &clauseBuilder{}
	if q.BusinessUserID != nil {
		b.add("r.business_user_id = $%d", *q.BusinessUserID)
	}
	if q.ReviewerID != nil {
		b.add("r.reviewer_id = $%d", *q.ReviewerID)
	}
	return b
}
