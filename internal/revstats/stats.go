package revstats

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"krimiwiki/internal/logging"
)

// Revision is one edit of an article.
type Revision struct {
	User string
	Anon bool
	Time time.Time
}

// Span is the time range of a user's activity in one dimension.
type Span struct {
	Oldest time.Time
	Newest time.Time
}

func (s *Span) add(t time.Time) {
	if s.Oldest.IsZero() || t.Before(s.Oldest) {
		s.Oldest = t
	}
	if s.Newest.IsZero() || s.Newest.Before(t) {
		s.Newest = t
	}
}

func (s *Span) merge(o Span) {
	if o.Oldest.IsZero() {
		return
	}
	s.add(o.Oldest)
	s.add(o.Newest)
}

// User aggregates one account's activity. Articles counts the articles the
// user edited at least once, Authored the articles the user created and
// Contribs every edit.
type User struct {
	Name     string
	Anon     bool
	Articles int
	Authored int
	Contribs int

	ArticlesSpan Span
	AuthoredSpan Span
	ContribsSpan Span
}

// Year aggregates the activity of one calendar year.
type Year struct {
	Year     int
	Articles int
	Authored int
	Contribs int
}

// Collector accumulates revision histories.
type Collector struct {
	users  map[string]*User
	years  map[int]*Year
	pages  int
	logger *slog.Logger
}

// NewCollector returns an empty Collector.
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Collector{
		users:  make(map[string]*User),
		years:  make(map[int]*Year),
		logger: logger,
	}
}

// AddHistory counts the revisions of one article, oldest first. The first
// revision's user authored the article.
func (c *Collector) AddHistory(revs []Revision) {
	if len(revs) == 0 {
		return
	}
	c.pages++
	seenUsers := make(map[*User]bool)
	seenYears := make(map[*Year]bool)
	for i, rev := range revs {
		t := rev.Time.UTC()
		u := c.user(rev.User, rev.Anon)
		u.Contribs++
		u.ContribsSpan.add(t)
		if i == 0 {
			u.Authored++
			u.AuthoredSpan.add(t)
		}
		if !seenUsers[u] {
			seenUsers[u] = true
			u.Articles++
			u.ArticlesSpan.add(t)
		}

		y := c.year(t.Year())
		y.Contribs++
		if i == 0 {
			y.Authored++
		}
		if !seenYears[y] {
			seenYears[y] = true
			y.Articles++
		}
	}
}

func (c *Collector) user(name string, anon bool) *User {
	u, ok := c.users[name]
	if !ok {
		u = &User{Name: name, Anon: anon}
		c.users[name] = u
		return u
	}
	if u.Anon != anon {
		prefix := ""
		if anon {
			prefix = "not "
		}
		logging.WarnWithContext(c.logger, "user was previously "+prefix+"anonymous", "revstats_anon_flip",
			logging.String("user", name),
			logging.String(logging.FieldImpact, "edits are counted under one user"))
	}
	return u
}

func (c *Collector) year(n int) *Year {
	y, ok := c.years[n]
	if !ok {
		y = &Year{Year: n}
		c.years[n] = y
	}
	return y
}

// Pages returns the number of articles counted.
func (c *Collector) Pages() int { return c.pages }

// Years returns the yearly totals, most recent first.
func (c *Collector) Years() []Year {
	out := make([]Year, 0, len(c.years))
	for _, y := range c.years {
		out = append(out, *y)
	}
	slices.SortFunc(out, func(a, b Year) int { return cmp.Compare(b.Year, a.Year) })
	return out
}

// Ranking selects the dimension users are ranked by.
type Ranking string

const (
	ByArticles Ranking = "articles"
	ByAuthored Ranking = "authored"
	ByContribs Ranking = "contribs"
)

// Span returns the user's activity span for the ranking's dimension.
func (r Ranking) Span(u User) Span {
	switch r {
	case ByArticles:
		return u.ArticlesSpan
	case ByAuthored:
		return u.AuthoredSpan
	default:
		return u.ContribsSpan
	}
}

func (r Ranking) key(u User) [3]int {
	switch r {
	case ByArticles:
		return [3]int{u.Articles, u.Authored, u.Contribs}
	case ByAuthored:
		return [3]int{u.Authored, u.Contribs, u.Articles}
	default:
		return [3]int{u.Contribs, u.Authored, u.Articles}
	}
}

// Users returns the users in descending order of the ranking. Ties are
// ordered by name, also descending. Ranking by authored omits users who
// created no article.
func (c *Collector) Users(r Ranking) []User {
	out := make([]User, 0, len(c.users))
	for _, u := range c.users {
		if r == ByAuthored && u.Authored == 0 {
			continue
		}
		out = append(out, *u)
	}
	slices.SortFunc(out, func(a, b User) int {
		ka, kb := r.key(a), r.key(b)
		for i := range ka {
			if d := cmp.Compare(kb[i], ka[i]); d != 0 {
				return d
			}
		}
		return cmp.Compare(b.Name, a.Name)
	})
	return out
}
