package filter

import (
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderPlaceholderNumbering(t *testing.T) {
	b := NewBuilder(2)

	p1 := b.Bind("a")
	p2 := b.Bind("b")

	assert.Equal(t, "$3", p1)
	assert.Equal(t, "$4", p2)
	assert.Equal(t, []any{"a", "b"}, b.Args())
}

func TestSetApplyIgnoresUnknownAndBlankParams(t *testing.T) {
	set := NewSet(
		Exact("author", "a.author_id"),
	)
	q := url.Values{
		"author":   {"  "},
		"verbose":  {"true"},
		"whatever": {"x"},
	}

	b := NewBuilder(0)
	require.NoError(t, set.Apply(q, b))

	assert.Empty(t, b.Fragments())
	assert.Empty(t, b.Args())
}

func TestExactAndIExact(t *testing.T) {
	set := NewSet(
		Exact("author", "a.author_id"),
		IExact("tag", "t.name"),
	)
	q := url.Values{"author": {"user_42"}, "tag": {"Python"}}

	b := NewBuilder(0)
	require.NoError(t, set.Apply(q, b))

	assert.Equal(t, []string{
		"a.author_id = $1",
		"lower(t.name) = lower($2)",
	}, b.Fragments())
	assert.Equal(t, []any{"user_42", "Python"}, b.Args())
}

func TestIContainsEscapesLikeMetacharacters(t *testing.T) {
	set := NewSet(IContains("title", "a.title"))
	q := url.Values{"title": {"50%_done"}}

	b := NewBuilder(0)
	require.NoError(t, set.Apply(q, b))

	require.Len(t, b.Args(), 1)
	assert.Equal(t, `%50\%\_done%`, b.Args()[0])
	assert.Equal(t, []string{"a.title ILIKE $1"}, b.Fragments())
}

func TestChoiceRejectsUnknownValue(t *testing.T) {
	set := NewSet(Choice("status", "a.status", "draft", "published", "archived"))

	b := NewBuilder(0)
	err := set.Apply(url.Values{"status": {"pending"}}, b)

	var ferr *InvalidFilterError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "status", ferr.Param)
}

func TestMultiChoiceBindsSlice(t *testing.T) {
	set := NewSet(MultiChoice("status", "t.status", "recruiting", "active", "completed"))
	q := url.Values{"status": {"recruiting", "active"}}

	b := NewBuilder(0)
	require.NoError(t, set.Apply(q, b))

	assert.Equal(t, []string{"t.status = ANY($1)"}, b.Fragments())
	assert.Equal(t, []any{[]string{"recruiting", "active"}}, b.Args())
}

func TestInSplitsCommaList(t *testing.T) {
	set := NewSet(In("status_in", "t.status"))
	q := url.Values{"status_in": {"recruiting, active"}}

	b := NewBuilder(0)
	require.NoError(t, set.Apply(q, b))

	assert.Equal(t, []any{[]string{"recruiting", "active"}}, b.Args())
}

func TestDateBoundsParse(t *testing.T) {
	set := NewSet(
		DateGTE("created_after", "a.created_at"),
		DateLTE("created_before", "a.created_at"),
	)
	q := url.Values{
		"created_after":  {"2024-01-01"},
		"created_before": {"2024-12-31"},
	}

	b := NewBuilder(0)
	require.NoError(t, set.Apply(q, b))

	assert.Equal(t, []string{
		"a.created_at >= $1",
		"a.created_at <= $2",
	}, b.Fragments())

	require.Len(t, b.Args(), 2)
	after, ok := b.Args()[0].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2024, after.Year())
}

func TestDateBoundRejectsGarbage(t *testing.T) {
	set := NewSet(DateGTE("created_after", "a.created_at"))

	err := set.Apply(url.Values{"created_after": {"yesterday"}}, NewBuilder(0))

	var ferr *InvalidFilterError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "created_after", ferr.Param)
}

func TestNumberBoundsUseDecimal(t *testing.T) {
	set := NewSet(
		NumberGTE("budget_min", "t.budget"),
		NumberLTE("budget_max", "t.budget"),
	)
	q := url.Values{"budget_min": {"10000"}, "budget_max": {"50000.50"}}

	b := NewBuilder(0)
	require.NoError(t, set.Apply(q, b))

	require.Len(t, b.Args(), 2)
	min, ok := b.Args()[0].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, min.Equal(decimal.NewFromInt(10000)))
}

func TestYearMonthExtract(t *testing.T) {
	set := NewSet(
		Year("created_year", "t.created_at"),
		Month("created_month", "t.created_at"),
	)
	q := url.Values{"created_year": {"2024"}, "created_month": {"1"}}

	b := NewBuilder(0)
	require.NoError(t, set.Apply(q, b))

	assert.Equal(t, []string{
		"EXTRACT(YEAR FROM t.created_at) = $1",
		"EXTRACT(MONTH FROM t.created_at) = $2",
	}, b.Fragments())
	assert.Equal(t, []any{2024, 1}, b.Args())
}

func TestSearchSharesOneBinding(t *testing.T) {
	set := NewSet(Search("search", "a.title", "a.content"))
	q := url.Values{"search": {"cancer"}}

	b := NewBuilder(0)
	require.NoError(t, set.Apply(q, b))

	assert.Equal(t, []string{"(a.title ILIKE $1 OR a.content ILIKE $1)"}, b.Fragments())
	assert.Equal(t, []any{"%cancer%"}, b.Args())
}

func TestCustomPredicate(t *testing.T) {
	set := NewSet(Custom("has_participants", func(b *Builder, values []string) error {
		v, err := ParseBool(values[0])
		if err != nil {
			return &InvalidFilterError{Param: "has_participants", Message: "must be true or false"}
		}
		if v {
			b.Where("EXISTS (SELECT 1 FROM trial_participants tp WHERE tp.trial_id = t.id)")
		} else {
			b.Where("NOT EXISTS (SELECT 1 FROM trial_participants tp WHERE tp.trial_id = t.id)")
		}
		return nil
	}))

	b := NewBuilder(0)
	require.NoError(t, set.Apply(url.Values{"has_participants": {"true"}}, b))
	assert.Equal(t, []string{"EXISTS (SELECT 1 FROM trial_participants tp WHERE tp.trial_id = t.id)"}, b.Fragments())

	err := set.Apply(url.Values{"has_participants": {"maybe"}}, NewBuilder(0))
	var ferr *InvalidFilterError
	require.ErrorAs(t, err, &ferr)
}

func TestExcludeAndBool(t *testing.T) {
	set := NewSet(
		Exclude("exclude_status", "t.status"),
		Bool("is_public", "t.is_public"),
	)
	q := url.Values{"exclude_status": {"completed"}, "is_public": {"1"}}

	b := NewBuilder(0)
	require.NoError(t, set.Apply(q, b))

	assert.Equal(t, []string{
		"t.status <> $1",
		"t.is_public = $2",
	}, b.Fragments())
	assert.Equal(t, []any{"completed", true}, b.Args())
}

func TestOrderingWhitelist(t *testing.T) {
	o := NewOrdering("-created_at").
		Allow("created_at", "a.created_at").
		Allow("updated_at", "a.updated_at").
		Allow("title", "a.title")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"default when absent", "", "a.created_at DESC"},
		{"single ascending", "title", "a.title ASC"},
		{"single descending", "-updated_at", "a.updated_at DESC"},
		{"multiple keys", "-created_at,title", "a.created_at DESC, a.title ASC"},
		{"unknown keys skipped", "evil;drop,title", "a.title ASC"},
		{"all unknown falls back", "evil", "a.created_at DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{}
			if tt.in != "" {
				q.Set(OrderingParam, tt.in)
			}
			assert.Equal(t, tt.want, o.OrderBy(q))
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", DefaultPageLimit, 0},
		{"explicit", "limit=10&offset=30", 10, 30},
		{"clamped to max", "limit=5000", MaxPageLimit, 0},
		{"zero limit falls back", "limit=0", DefaultPageLimit, 0},
		{"negative offset falls back", "offset=-5", DefaultPageLimit, 0},
		{"garbage falls back", "limit=ten&offset=few", DefaultPageLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			page := ParsePage(q)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantOffset, page.Offset)
		})
	}
}
