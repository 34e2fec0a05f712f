package payments

import (
	"github.com/doug-martin/goqu/v9"
)

// fetchPaymentsQuery narrows the list at the SQL level. Status is not here:
// overdue is derived, so status filtering happens over the built views.
type fetchPaymentsQuery struct {
	Type      string `form:"type"`
	RelatedID *int   `form:"related_id" binding:"omitempty,number"`
	Status    string `form:"status"`
}

func (q *fetchPaymentsQuery) BuildConditions(aliases map[string]string) goqu.Ex {
	conditions := goqu.Ex{}

	if q.Type != "" {
		conditions[aliases["type"]] = q.Type
	}
	if q.RelatedID != nil {
		conditions[aliases["related_id"]] = *q.RelatedID
	}

	return conditions
}
