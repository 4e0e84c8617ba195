package domain

import (
	"encoding/json"
	"time"
)

// Sentinel option values meaning "no constraint" on a filter
const (
	AllCategories     = "All Categories"
	AllLocations      = "All Locations"
	AllTypes          = "All Types"
	AllBlogCategories = "all-categories"
)

// Timestamp is a backend date that tolerates empty or malformed values,
// which decode to the zero time instead of failing the whole payload
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t.Time = time.Time{}
		return nil
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// Image references an uploaded asset on the backend CDN
type Image struct {
	PublicID string `json:"public_id,omitempty"`
	URL      string `json:"url"`
}

// Job is a vacancy as served by GET /jobs
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Salary      string    `json:"salary"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	PostedDate  Timestamp `json:"postedDate"`
	Skills      []string  `json:"skills"`
	Logo        *Image    `json:"logo,omitempty"`
	Rating      float64   `json:"rating"`
	Applicants  int       `json:"applicants"`
}

// UnmarshalJSON accepts both "id" and the backend's "_id"
func (j *Job) UnmarshalJSON(b []byte) error {
	type plain Job
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*j = Job(raw.plain)
	if j.ID == "" {
		j.ID = raw.MongoID
	}
	return nil
}

// FilterOptions lists the selectable vacancy filters, sentinel first
type FilterOptions struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
	JobTypes   []string `json:"jobTypes"`
}

// FeaturedCompany is a hiring company highlighted on the vacancies page
type FeaturedCompany struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Logo   string  `json:"logo,omitempty"`
	Jobs   int     `json:"jobs"`
	Rating float64 `json:"rating"`
}

// CategoryRef is the populated category embedded in a post
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (c *CategoryRef) UnmarshalJSON(b []byte) error {
	type plain CategoryRef
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = CategoryRef(raw.plain)
	if c.ID == "" {
		c.ID = raw.MongoID
	}
	return nil
}

// BlogCategory is an entry of GET /blog/categories
type BlogCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

func (c *BlogCategory) UnmarshalJSON(b []byte) error {
	type plain BlogCategory
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = BlogCategory(raw.plain)
	if c.ID == "" {
		c.ID = raw.MongoID
	}
	return nil
}

// BlogPost is a published article
type BlogPost struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Excerpt       string      `json:"excerpt"`
	Content       []string    `json:"content"`
	Author        string      `json:"author"`
	PublishDate   Timestamp   `json:"publishDate"`
	ReadTime      string      `json:"readTime"`
	FeaturedImage *Image      `json:"featuredImage,omitempty"`
	Category      CategoryRef `json:"category"`
	Tags          []string    `json:"tags"`
	Views         *int        `json:"views,omitempty"`
}

func (p *BlogPost) UnmarshalJSON(b []byte) error {
	type plain BlogPost
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = BlogPost(raw.plain)
	if p.ID == "" {
		p.ID = raw.MongoID
	}
	return nil
}

// ContactInfo is the agency's public contact block
type ContactInfo struct {
	ID             string `json:"_id,omitempty"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	LocationMapURL string `json:"locationMapUrl"`
}

// NewVacancy is the admin form for POST /jobs
type NewVacancy struct {
	Title       string
	Company     string
	Location    string
	Type        string
	Salary      string
	Category    string
	Description string
	Skills      string // comma separated, split by the backend
}

// NewBlogCategory is the admin form for POST /blog/categories
type NewBlogCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewBlogPost is the admin form for POST /blog/posts
type NewBlogPost struct {
	Title       string
	Excerpt     string
	Content     string
	Author      string
	ReadTime    string
	CategoryID  string
	Tags        string // comma separated
	IsPublished bool
}

// DefaultReadTime is prefilled on a new post
const DefaultReadTime = "5 min read"
