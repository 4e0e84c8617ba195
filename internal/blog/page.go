// Package blog wires the list primitive to the blog endpoints.
package blog

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/honeycarbs/silver-talent/internal/domain"
	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/pkg/logging"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

const (
	TextKey     = "search"
	CategoryKey = "category"
)

// Sentinels of the blog filters
var Sentinels = listing.Sentinels{CategoryKey: domain.AllBlogCategories}

const (
	// PostsFallback is shown when a post list fails without a server message
	PostsFallback   = "Failed to load filtered blog posts."
	articleFallback = "Could not load article."
)

// EmptyMessage is shown when no post matches the filters
const EmptyMessage = "No articles found. Try a different search or category."

// Backend is the part of the REST client the blog page uses
type Backend interface {
	ListPostsValues(ctx context.Context, values url.Values) ([]domain.BlogPost, error)
	ListCategories(ctx context.Context) ([]domain.BlogCategory, error)
	GetPost(ctx context.Context, slug string) (domain.BlogPost, error)
}

var _ Backend = (*silvertalent.Client)(nil)

// Page is one mounted blog page
type Page struct {
	backend Backend
	logger  *logging.Logger

	Filters    *listing.FilterState
	Posts      *listing.Orchestrator[domain.BlogPost]
	Categories *listing.OptionSource

	mu         sync.Mutex
	categories []domain.BlogCategory
	views      map[string]int
}

// NewPage builds an unmounted page. opts tune the posts orchestrator.
func NewPage(backend Backend, logger *logging.Logger, opts ...listing.Option) (*Page, error) {
	if backend == nil {
		return nil, fmt.Errorf("blog: backend is required")
	}
	logger = logging.OrNop(logger).Component("blog")

	p := &Page{
		backend: backend,
		logger:  logger,
		views:   make(map[string]int),
	}

	base := []listing.Option{
		listing.WithLogger(logger),
		listing.WithName("blog.posts"),
		listing.WithFallbackMessage(PostsFallback),
	}
	posts, err := listing.NewOrchestrator(p.fetchPosts, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("blog: %w", err)
	}
	p.Posts = posts

	categories, err := listing.NewOptionSource(p.loadCategories, []listing.SelectSpec{
		{Key: CategoryKey, Sentinel: domain.AllBlogCategories},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("blog: %w", err)
	}
	p.Categories = categories
	p.Filters = listing.NewFilterState(Sentinels, posts.OnQueryChange)

	return p, nil
}

// Mount loads all published posts and the category list side by side
func (p *Page) Mount(ctx context.Context) error {
	p.Posts.Search(p.Filters.Query())
	_ = p.Categories.Load(ctx)
	return ctx.Err()
}

// SetSearch edits the free text
func (p *Page) SetSearch(text string) {
	p.Filters.SetFreeText(text)
}

// SetCategory selects a category by slug; empty selects all categories
func (p *Page) SetCategory(slug string) {
	p.Filters.SetFilter(CategoryKey, slug)
}

// Clear resets search and category
func (p *Page) Clear() {
	p.Filters.Clear()
}

// SearchNow issues the current query immediately
func (p *Page) SearchNow() {
	p.Posts.Search(p.Filters.Query())
}

// Retry re-issues the last query
func (p *Page) Retry() {
	p.Posts.Retry()
}

// CategoryList returns the loaded categories with names, for display
func (p *Page) CategoryList() []domain.BlogCategory {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.BlogCategory(nil), p.categories...)
}

// View renders the post list with any view counts learned from Open
func (p *Page) View() listing.View[domain.BlogPost] {
	st := p.Posts.State()
	st.Items = p.withViews(st.Items)
	return listing.RenderWith(st, listing.RenderOptions{
		Placeholders: 6,
		EmptyMessage: EmptyMessage,
	})
}

// Open returns the full article. A listed post that already carries content is
// used as is; otherwise the article is fetched, which also counts a view.
func (p *Page) Open(ctx context.Context, slug string) (domain.BlogPost, error) {
	for _, post := range p.withViews(p.Posts.State().Items) {
		if post.Slug == slug && len(post.Content) > 0 {
			return post, nil
		}
	}

	post, err := p.backend.GetPost(ctx, slug)
	if err != nil {
		p.logger.Warn("article load failed", "slug", slug, "err", err)
		return domain.BlogPost{}, fmt.Errorf("blog: open %s: %w", slug, err)
	}

	if post.Views != nil && post.ID != "" {
		p.mu.Lock()
		p.views[post.ID] = *post.Views
		p.mu.Unlock()
	}
	return post, nil
}

// OpenMessage is the user facing message for an Open failure
func OpenMessage(err error) string {
	return listing.MessageOf(err, articleFallback)
}

// Close aborts outstanding requests
func (p *Page) Close() {
	p.Posts.Close()
}

// FormatPublished renders a publish date in long form
func FormatPublished(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("January 2, 2006")
}

func (p *Page) fetchPosts(ctx context.Context, q listing.ListQuery) ([]domain.BlogPost, error) {
	return p.backend.ListPostsValues(ctx, Params(q))
}

// Query builds a blog query. An empty category means every category.
func Query(search, category string) listing.ListQuery {
	q := listing.DefaultQuery(Sentinels)
	q.FreeText = search
	if category != "" {
		q.Filters[CategoryKey] = category
	}
	return q
}

// Params is the /blog/posts query string of q
func Params(q listing.ListQuery) url.Values {
	return q.Params(TextKey, Sentinels)
}

func (p *Page) loadCategories(ctx context.Context) (listing.OptionSet, error) {
	categories, err := p.backend.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.categories = categories
	p.mu.Unlock()

	slugs := make([]string, 0, len(categories))
	for _, c := range categories {
		slugs = append(slugs, c.Slug)
	}
	return listing.OptionSet{CategoryKey: slugs}, nil
}

func (p *Page) withViews(posts []domain.BlogPost) []domain.BlogPost {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.views) == 0 || len(posts) == 0 {
		return posts
	}

	out := make([]domain.BlogPost, len(posts))
	copy(out, posts)
	for i := range out {
		if v, ok := p.views[out[i].ID]; ok {
			out[i].Views = &v
		}
	}
	return out
}
