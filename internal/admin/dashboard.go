package admin

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/honeycarbs/silver-talent/internal/domain"
	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/pkg/logging"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

// Backend is the part of the REST client the dashboard uses
type Backend interface {
	GetContactInfo(ctx context.Context) (domain.ContactInfo, error)
	UpdateContactInfo(ctx context.Context, info domain.ContactInfo) (silvertalent.MutationResult[domain.ContactInfo], error)
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
	ListCategories(ctx context.Context) ([]domain.BlogCategory, error)
	CreateJob(ctx context.Context, in domain.NewVacancy, logo *silvertalent.Upload) (silvertalent.MutationResult[domain.Job], error)
	CreateCategory(ctx context.Context, in domain.NewBlogCategory) (silvertalent.MutationResult[domain.BlogCategory], error)
	CreatePost(ctx context.Context, in domain.NewBlogPost, image *silvertalent.Upload) (silvertalent.MutationResult[domain.BlogPost], error)
}

var _ Backend = (*silvertalent.Client)(nil)

// Dashboard holds the reference data behind the admin forms
type Dashboard struct {
	backend Backend
	logger  *logging.Logger

	mu             sync.Mutex
	contact        domain.ContactInfo
	jobCategories  []string
	jobTypes       []string
	blogCategories []domain.BlogCategory
}

// NewDashboard builds an unmounted dashboard
func NewDashboard(backend Backend, logger *logging.Logger) (*Dashboard, error) {
	if backend == nil {
		return nil, fmt.Errorf("admin: backend is required")
	}
	return &Dashboard{backend: backend, logger: logging.OrNop(logger).Component("admin")}, nil
}

// Mount loads contact info, vacancy options and blog categories. Every load
// runs to completion; the first failure is returned.
func (d *Dashboard) Mount(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		info, err := d.backend.GetContactInfo(ctx)
		if err != nil {
			return fmt.Errorf("admin: contact info: %w", err)
		}
		d.mu.Lock()
		d.contact = info
		d.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		opts, err := d.backend.FilterOptions(ctx)
		if err != nil {
			return fmt.Errorf("admin: vacancy filters: %w", err)
		}
		d.mu.Lock()
		d.jobCategories = withoutSentinel(opts.Categories, domain.AllCategories)
		d.jobTypes = withoutSentinel(opts.JobTypes, domain.AllTypes)
		d.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		return d.RefreshCategories(ctx)
	})

	if err := g.Wait(); err != nil {
		d.logger.Warn("dashboard data incomplete", "err", err)
		return err
	}
	return nil
}

// RefreshCategories reloads the blog categories used by the post form
func (d *Dashboard) RefreshCategories(ctx context.Context) error {
	categories, err := d.backend.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("admin: blog categories: %w", err)
	}
	d.mu.Lock()
	d.blogCategories = categories
	d.mu.Unlock()
	return nil
}

// Contact returns the loaded contact info
func (d *Dashboard) Contact() domain.ContactInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.contact
}

// JobCategories are the selectable vacancy categories, sentinel removed
func (d *Dashboard) JobCategories() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.jobCategories)
}

// JobTypes are the selectable vacancy types, sentinel removed
func (d *Dashboard) JobTypes() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.jobTypes)
}

// BlogCategories are the categories a post can be filed under
func (d *Dashboard) BlogCategories() []domain.BlogCategory {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.blogCategories)
}

// VacancyDefaults is a blank vacancy form with the first category and type selected
func (d *Dashboard) VacancyDefaults() domain.NewVacancy {
	d.mu.Lock()
	defer d.mu.Unlock()
	var v domain.NewVacancy
	if len(d.jobCategories) > 0 {
		v.Category = d.jobCategories[0]
	}
	if len(d.jobTypes) > 0 {
		v.Type = d.jobTypes[0]
	}
	return v
}

// PostDefaults is a blank post form filed under the first category
func (d *Dashboard) PostDefaults() domain.NewBlogPost {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := domain.NewBlogPost{ReadTime: domain.DefaultReadTime}
	if len(d.blogCategories) > 0 {
		p.CategoryID = d.blogCategories[0].ID
	}
	return p
}

// UpdateContact saves the contact block and keeps the server's copy
func (d *Dashboard) UpdateContact(ctx context.Context, info domain.ContactInfo) (string, error) {
	res, err := d.backend.UpdateContactInfo(ctx, info)
	if err != nil {
		return "", err
	}
	if res.Data != nil {
		d.mu.Lock()
		d.contact = *res.Data
		d.mu.Unlock()
	}
	d.logger.Info("contact info updated")
	return messageOr(res.Message, "Contact info updated!"), nil
}

// AddVacancy validates and posts a vacancy. logo may be nil.
func (d *Dashboard) AddVacancy(ctx context.Context, in domain.NewVacancy, logo *silvertalent.Upload) (string, error) {
	var verrs listing.ValidationErrors
	for _, f := range []struct{ name, value string }{
		{"title", in.Title},
		{"company", in.Company},
		{"location", in.Location},
		{"type", in.Type},
		{"category", in.Category},
		{"description", in.Description},
	} {
		if strings.TrimSpace(f.value) == "" {
			verrs = append(verrs, listing.ValidationError{Field: f.name, Reason: "required"})
		}
	}
	if err := verrs.Err(); err != nil {
		return "", err
	}

	in.Skills = normalizeList(in.Skills)
	res, err := d.backend.CreateJob(ctx, in, logo)
	if err != nil {
		return "", err
	}
	d.logger.Info("vacancy added", "title", in.Title, "with_logo", logo != nil)
	return messageOr(res.Message, "Vacancy added!"), nil
}

// AddBlogCategory creates a category and reloads the category list
func (d *Dashboard) AddBlogCategory(ctx context.Context, in domain.NewBlogCategory) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return "", listing.ValidationError{Field: "name", Reason: "Category name is required."}
	}

	res, err := d.backend.CreateCategory(ctx, in)
	if err != nil {
		return "", err
	}
	if err := d.RefreshCategories(ctx); err != nil {
		d.logger.Warn("category list refresh failed", "err", err)
	}
	d.logger.Info("blog category added", "name", in.Name)
	return messageOr(res.Message, "Blog category added successfully!"), nil
}

// AddBlogPost validates and posts an article with its featured image
func (d *Dashboard) AddBlogPost(ctx context.Context, in domain.NewBlogPost, image *silvertalent.Upload) (string, error) {
	var verrs listing.ValidationErrors
	if strings.TrimSpace(in.Title) == "" {
		verrs = append(verrs, listing.ValidationError{Field: "title", Reason: "required"})
	}
	if strings.TrimSpace(in.Content) == "" {
		verrs = append(verrs, listing.ValidationError{Field: "content", Reason: "required"})
	}
	if in.CategoryID == "" {
		verrs = append(verrs, listing.ValidationError{Field: "categoryId", Reason: "required"})
	}
	if image == nil {
		verrs = append(verrs, listing.ValidationError{Field: FeaturedImage.Field, Reason: "Featured image is required."})
	}
	if err := verrs.Err(); err != nil {
		return "", err
	}

	if in.ReadTime == "" {
		in.ReadTime = domain.DefaultReadTime
	}
	in.Tags = normalizeList(in.Tags)

	res, err := d.backend.CreatePost(ctx, in, image)
	if err != nil {
		return "", err
	}
	d.logger.Info("blog post added", "title", in.Title, "published", in.IsPublished)
	return messageOr(res.Message, "Blog post added!"), nil
}

func withoutSentinel(values []string, sentinel string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" && v != sentinel {
			out = append(out, v)
		}
	}
	return out
}

// normalizeList trims the entries of a comma separated list and drops empties
func normalizeList(s string) string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
