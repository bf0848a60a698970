package revstats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TopUsers is the number of users listed per ranking.
const TopUsers = 20

const timeLayout = "2006-01-02 15:04:05"

var numbers = message.NewPrinter(language.English)

func count(n int) string { return numbers.Sprintf("%d", n) }

func newTable(title string, header table.Row, rightColumns ...int) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(title)
	tw.Style().Title.Align = text.AlignCenter
	tw.AppendHeader(header)
	configs := make([]table.ColumnConfig, 0, len(rightColumns))
	for _, n := range rightColumns {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
	return tw
}

// RenderYears renders the yearly totals, most recent year first.
func (c *Collector) RenderYears() string {
	tw := newTable("Years", table.Row{"Year", "Articles", "Authored", "Contribs"}, 2, 3, 4)
	var authored, contribs int
	for _, y := range c.Years() {
		tw.AppendRow(table.Row{y.Year, count(y.Articles), count(y.Authored), count(y.Contribs)})
		authored += y.Authored
		contribs += y.Contribs
	}
	tw.AppendFooter(table.Row{"Total", "", count(authored), count(contribs)})
	return tw.Render()
}

// RenderUsers renders the top users of one ranking followed by a totals row
// covering every ranked user.
func (c *Collector) RenderUsers(r Ranking) string {
	tw := newTable("Most "+string(r),
		table.Row{"Rank", "User", "Articles", "Authored", "Contribs", "Oldest", "Newest"}, 1, 3, 4, 5)
	users := c.Users(r)
	var authored, contribs int
	var overall Span
	for i, u := range users {
		authored += u.Authored
		contribs += u.Contribs
		span := r.Span(u)
		overall.merge(span)
		if i >= TopUsers {
			continue
		}
		name := u.Name
		if u.Anon {
			name += " (anon)"
		}
		tw.AppendRow(table.Row{i + 1, name, count(u.Articles), count(u.Authored), count(u.Contribs),
			formatTime(span.Oldest), formatTime(span.Newest)})
	}
	tw.AppendFooter(table.Row{fmt.Sprintf("%s users", count(len(users))), "", "",
		count(authored), count(contribs), formatTime(overall.Oldest), formatTime(overall.Newest)})
	return tw.Render()
}

// WriteTables writes the years table and the three user rankings.
func (c *Collector) WriteTables(w io.Writer) error {
	var b strings.Builder
	b.WriteString(c.RenderYears())
	b.WriteByte('\n')
	for _, r := range []Ranking{ByContribs, ByAuthored, ByArticles} {
		b.WriteString(c.RenderUsers(r))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
