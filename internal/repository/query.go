package repository

import (
	"context"

	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

const (
	TableMembers       = "members"
	TableEvents        = "events"
	TableMeetings      = "meetings"
	TableExpenses      = "expenses"
	TableGallery       = "gallery"
	TableNotifications = "notifications"
)

// Filter is an equality predicate on a single column.
type Filter struct {
	Column string
	Value  any
}

// ListOptions controls filtering and ordering of List calls. Column names
// must come from the repository's own column set, never from user input.
type ListOptions struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

func (o ListOptions) orDefault(orderBy string, desc bool) ListOptions {
	if o.OrderBy == "" {
		o.OrderBy = orderBy
		o.Desc = desc
	}
	return o
}

func buildSelect(ctx context.Context, table string, columns []string, opts ListOptions) (string, []any, error) {
	cols := make([]any, len(columns))
	for i, c := range columns {
		cols[i] = c
	}

	q := psql.Select(
		sm.Columns(cols...),
		sm.From(table),
	)

	for _, f := range opts.Filters {
		q.Apply(sm.Where(psql.Quote(f.Column).EQ(psql.Arg(f.Value))))
	}

	if opts.OrderBy != "" {
		if opts.Desc {
			q.Apply(sm.OrderBy(psql.Quote(opts.OrderBy)).Desc())
		} else {
			q.Apply(sm.OrderBy(psql.Quote(opts.OrderBy)).Asc())
		}
	}

	if opts.Limit > 0 {
		q.Apply(sm.Limit(opts.Limit))
	}

	return q.Build(ctx)
}
