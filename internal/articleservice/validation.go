package articleservice

import (
	"fmt"
	"math"

	"github.com/sushihentaime/pressroom/internal/common"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxFrom keeps From*Limit within a 32-bit OFFSET.
	MaxFrom = math.MaxInt32 / MaxLimit

	SortByCreatedDate = "createdDate"
	SortByUpdatedDate = "updatedDate"
	SortByTitle       = "title"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// sortColumns maps the accepted sortBy values to SQL columns.
var sortColumns = map[string]string{
	SortByCreatedDate: "a.created_date",
	SortByUpdatedDate: "a.updated_date",
	SortByTitle:       "a.title",
}

func validateTitle(v *common.Validator, title string) {
	v.Check(v.NotBlank(title), "title", "must be provided")
	v.Check(v.CheckStringLength(title, 0, 255), "title", "must not be more than 255 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(v.NotBlank(content), "content", "must be provided")
}

func validateArticle(v *common.Validator, req ArticleRequest) {
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
}

func validateListFilter(v *common.Validator, f ListFilter) {
	v.Check(f.From >= 0, "from", "must not be negative")
	v.Check(f.From <= MaxFrom, "from", fmt.Sprintf("must not be more than %d", MaxFrom))
	v.Check(f.Limit > 0 && f.Limit <= MaxLimit, "limit", "must be between 1 and 100")

	_, ok := sortColumns[f.SortBy]
	v.Check(ok, "sortBy", "must be one of createdDate, updatedDate, title")
	v.Check(common.PermittedValue(f.SortDirection, SortAsc, SortDesc), "sortDirection", "must be asc or desc")
}

// applyDefaults fills in the sort order. Limit has no default here: zero is rejected.
func (f *ListFilter) applyDefaults() {
	if f.SortBy == "" {
		f.SortBy = SortByCreatedDate
	}
	if f.SortDirection == "" {
		f.SortDirection = SortAsc
	}
}
