package silvertalent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/honeycarbs/silver-talent/internal/domain"
)

// UpdateContactInfo replaces the contact block with PUT /contact-info
func (c *Client) UpdateContactInfo(ctx context.Context, info domain.ContactInfo) (MutationResult[domain.ContactInfo], error) {
	var res MutationResult[domain.ContactInfo]
	if err := c.sendJSON(ctx, http.MethodPut, "Contact info", info, &res, "contact-info"); err != nil {
		return MutationResult[domain.ContactInfo]{}, err
	}
	return res, nil
}

// CreateCategory adds a blog category with POST /blog/categories
func (c *Client) CreateCategory(ctx context.Context, in domain.NewBlogCategory) (MutationResult[domain.BlogCategory], error) {
	var res MutationResult[domain.BlogCategory]
	if err := c.sendJSON(ctx, http.MethodPost, "Blog category", in, &res, "blog", "categories"); err != nil {
		return MutationResult[domain.BlogCategory]{}, err
	}
	return res, nil
}

// CreateJob posts a vacancy as multipart form data with an optional logo
func (c *Client) CreateJob(ctx context.Context, in domain.NewVacancy, logo *Upload) (MutationResult[domain.Job], error) {
	fields := [][2]string{
		{"title", in.Title},
		{"company", in.Company},
		{"location", in.Location},
		{"type", in.Type},
		{"salary", in.Salary},
		{"category", in.Category},
		{"description", in.Description},
		{"skills", in.Skills},
	}

	var res MutationResult[domain.Job]
	if err := c.sendMultipart(ctx, "Vacancy", fields, "logoImage", logo, &res, "jobs"); err != nil {
		return MutationResult[domain.Job]{}, err
	}
	return res, nil
}

// CreatePost posts an article as multipart form data with an optional featured image
func (c *Client) CreatePost(ctx context.Context, in domain.NewBlogPost, image *Upload) (MutationResult[domain.BlogPost], error) {
	fields := [][2]string{
		{"title", in.Title},
		{"excerpt", in.Excerpt},
		{"content", in.Content},
		{"author", in.Author},
		{"readTime", in.ReadTime},
		{"categoryId", in.CategoryID},
		{"tags", in.Tags},
		{"isPublished", strconv.FormatBool(in.IsPublished)},
	}

	var res MutationResult[domain.BlogPost]
	if err := c.sendMultipart(ctx, "Blog post", fields, "featuredImageFile", image, &res, "blog", "posts"); err != nil {
		return MutationResult[domain.BlogPost]{}, err
	}
	return res, nil
}

func (c *Client) sendMultipart(
	ctx context.Context,
	label string,
	fields [][2]string,
	fileField string,
	file *Upload,
	out any,
	segments ...string,
) error {
	u, err := c.buildURL(nil, segments...)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("silvertalent: write field %s: %w", f[0], err)
		}
	}

	if file != nil && file.Body != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, file.Filename))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := mw.CreatePart(h)
		if err != nil {
			return fmt.Errorf("silvertalent: create %s part: %w", fileField, err)
		}
		if _, err := io.Copy(part, file.Body); err != nil {
			return fmt.Errorf("silvertalent: copy %s: %w", fileField, err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("silvertalent: close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return fmt.Errorf("silvertalent: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, label, out)
}
