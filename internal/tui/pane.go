package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/honeycarbs/silver-talent/internal/blog"
	"github.com/honeycarbs/silver-talent/internal/domain"
	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/internal/vacancies"
)

// row is one drawn list line
type row struct {
	id   string
	text string
}

// body is the list area of a pane, derived from a listing.View
type body struct {
	kind    listing.ViewKind
	message string
	rows    []row
	skel    int
}

// pane adapts one page to the shared key handling
type pane struct {
	title     string
	query     func() listing.ListQuery
	selects   func() []listing.Select
	setText   func(string)
	setFilter func(key, value string)
	clear     func()
	searchNow func()
	retry     func()
	header    func() string
	body      func() body
	mount     func(ctx context.Context) error
	close     func()
}

func project[T any](v listing.View[T], toRow func(int, T) row) body {
	b := body{kind: v.Kind, message: v.Message, skel: v.Placeholders}
	for i, item := range v.Items {
		b.rows = append(b.rows, toRow(i, item))
	}
	return b
}

func vacanciesPane(p *vacancies.Page, now func() time.Time) pane {
	return pane{
		title:     "Vacancies",
		query:     p.Filters.Query,
		selects:   p.Options.Selects,
		setText:   p.SetSearch,
		setFilter: p.SetFilter,
		clear:     p.Clear,
		searchNow: p.SearchNow,
		retry:     p.Retry,
		mount:     p.Mount,
		close:     p.Close,
		header: func() string {
			var b strings.Builder
			b.WriteString(p.CountLabel())
			b.WriteString("    Popular: ")
			b.WriteString(strings.Join(vacancies.Popular(), ", "))
			if c := p.Companies(); len(c.Items) > 0 {
				names := make([]string, 0, len(c.Items))
				for _, co := range c.Items {
					names = append(names, fmt.Sprintf("%s (%d)", co.Name, co.Jobs))
				}
				b.WriteString("\nFeatured: ")
				b.WriteString(strings.Join(names, ", "))
			} else if c.Message != "" {
				b.WriteString("\nFeatured: ")
				b.WriteString(c.Message)
			}
			return b.String()
		},
		body: func() body {
			return project(p.View(), func(i int, j domain.Job) row {
				id := j.ID
				if id == "" {
					id = fmt.Sprintf("job-%d", i)
				}
				fields := []string{j.Title, j.Company, j.Location, j.Type}
				if j.Salary != "" {
					fields = append(fields, j.Salary)
				}
				fields = append(fields, vacancies.FormatPosted(j.PostedDate.Time, now()))
				return row{id: id, text: strings.Join(fields, " | ")}
			})
		},
	}
}

func blogPane(p *blog.Page) pane {
	return pane{
		title:     "Blog",
		query:     p.Filters.Query,
		selects:   p.Categories.Selects,
		setText:   p.SetSearch,
		setFilter: func(_, slug string) { p.SetCategory(slug) },
		clear:     p.Clear,
		searchNow: p.SearchNow,
		retry:     p.Retry,
		mount:     p.Mount,
		close:     p.Close,
		header: func() string {
			return fmt.Sprintf("%d categories", len(p.CategoryList()))
		},
		body: func() body {
			return project(p.View(), func(i int, post domain.BlogPost) row {
				id := post.ID
				if id == "" {
					id = fmt.Sprintf("post-%d", i)
				}
				fields := []string{post.Title, post.Category.Name, blog.FormatPublished(post.PublishDate.Time), post.ReadTime}
				if post.Views != nil {
					fields = append(fields, fmt.Sprintf("%d views", *post.Views))
				}
				return row{id: id, text: strings.Join(fields, " | ")}
			})
		},
	}
}
