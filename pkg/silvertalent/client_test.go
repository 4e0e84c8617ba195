package silvertalent

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/honeycarbs/silver-talent/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/api/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestListJobs_sendsOnlyNonEmptyFilters(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[{"_id":"j1","title":"React Developer","skills":["React"]}]`)
	})

	jobs, err := c.ListJobs(context.Background(), JobParams{Query: "  React ", Category: "Technology"})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}

	if gotPath != "/api/jobs" {
		t.Errorf("path = %q, want /api/jobs", gotPath)
	}
	if gotQuery != "category=Technology&q=React" {
		t.Errorf("query = %q, want category=Technology&q=React", gotQuery)
	}
	if len(jobs) != 1 || jobs[0].ID != "j1" {
		t.Fatalf("jobs = %+v", jobs)
	}
}

func TestListJobs_noFiltersMeansNoQuery(t *testing.T) {
	t.Parallel()

	var gotQuery = "unset"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[]`)
	})

	jobs, err := c.ListJobs(context.Background(), JobParams{})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want empty", gotQuery)
	}
	if jobs == nil || len(jobs) != 0 {
		t.Errorf("jobs = %#v, want empty non-nil slice", jobs)
	}
}

func TestListJobs_structuredErrorMessage(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"Invalid category"}`)
	})

	_, err := c.ListJobs(context.Background(), JobParams{Category: "Nope"})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error %v is not *HTTPError", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", httpErr.Status)
	}
	if httpErr.UserMessage() != "Invalid category" {
		t.Errorf("UserMessage = %q, want Invalid category", httpErr.UserMessage())
	}
}

func TestListPosts_nonJSONErrorFallsBack(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>upstream down</html>")
	})

	_, err := c.ListPosts(context.Background(), PostParams{Search: "hiring"})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error %v is not *HTTPError", err)
	}
	if got, want := httpErr.UserMessage(), "Posts: Bad Gateway"; got != want {
		t.Errorf("UserMessage = %q, want %q", got, want)
	}
}

func TestNetworkFailureIsNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: url})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.FilterOptions(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error %v is not *NetworkError", err)
	}
}

func TestGetPost_escapesSlugPath(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		paths []string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.EscapedPath()+"?"+r.URL.RawQuery)
		mu.Unlock()
		_, _ = io.WriteString(w, `{"_id":"p1","slug":"top-10-tips","content":["a","b"],"views":4}`)
	})
	ctx := context.Background()

	post, err := c.GetPost(ctx, "top-10-tips")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if len(post.Content) != 2 || post.Views == nil || *post.Views != 4 {
		t.Errorf("post = %+v", post)
	}

	if _, err := c.GetPost(ctx, "x?y=1 #z"); err != nil {
		t.Fatalf("GetPost(query chars): %v", err)
	}

	mu.Lock()
	got := append([]string(nil), paths...)
	mu.Unlock()
	want := []string{"/api/blog/posts/top-10-tips?", "/api/blog/posts/x%3Fy=1%20%23z?"}
	if !slices.Equal(got, want) {
		t.Errorf("requested %q, want %q", got, want)
	}

	for _, slug := range []string{"../../contact-info", "a/b", "..", ".", `a\b`} {
		if _, err := c.GetPost(ctx, slug); !errors.Is(err, ErrInvalidSlug) {
			t.Errorf("GetPost(%q) err = %v, want ErrInvalidSlug", slug, err)
		}
	}
	if _, err := c.GetPost(ctx, ""); err == nil {
		t.Error("GetPost(\"\") expected error")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(paths) != len(want) {
		t.Errorf("rejected slugs reached the backend: %q", paths)
	}
}

func TestUpdateContactInfo_putsJSON(t *testing.T) {
	t.Parallel()

	var got domain.ContactInfo
	var method, contentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{"message":"Contact info updated!","data":{"address":"MG Road","phone":"+91 1","email":"hi@st.in","locationMapUrl":"https://maps"}}`)
	})

	res, err := c.UpdateContactInfo(context.Background(), domain.ContactInfo{Address: "MG Road", Email: "hi@st.in"})
	if err != nil {
		t.Fatalf("UpdateContactInfo: %v", err)
	}
	if method != http.MethodPut || contentType != "application/json" {
		t.Errorf("method=%s content-type=%s", method, contentType)
	}
	if got.Address != "MG Road" {
		t.Errorf("server received %+v", got)
	}
	if res.Message != "Contact info updated!" || res.Data == nil || res.Data.LocationMapURL != "https://maps" {
		t.Errorf("result = %+v", res)
	}
}

func TestCreateJob_multipartWithLogo(t *testing.T) {
	t.Parallel()

	type received struct {
		title, skills, filename, fileType, fileBody string
	}
	var got received

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		got.title = r.FormValue("title")
		got.skills = r.FormValue("skills")
		f, hdr, err := r.FormFile("logoImage")
		if err == nil {
			b, _ := io.ReadAll(f)
			got.filename = hdr.Filename
			got.fileType = hdr.Header.Get("Content-Type")
			got.fileBody = string(b)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"message":"Vacancy added!","data":{"_id":"new1","title":"Go Engineer"}}`)
	})

	res, err := c.CreateJob(context.Background(), domain.NewVacancy{Title: "Go Engineer", Skills: "Go, gRPC"}, &Upload{
		Filename:    "logo.png",
		ContentType: "image/png",
		Body:        strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	want := received{title: "Go Engineer", skills: "Go, gRPC", filename: "logo.png", fileType: "image/png", fileBody: "png-bytes"}
	if got != want {
		t.Errorf("server received %+v, want %+v", got, want)
	}
	if res.Data == nil || res.Data.ID != "new1" {
		t.Errorf("result = %+v", res)
	}
}

func TestCreatePost_withoutImage(t *testing.T) {
	t.Parallel()

	var published string
	var hasFile bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(1 << 20)
		published = r.FormValue("isPublished")
		_, _, err := r.FormFile("featuredImageFile")
		hasFile = err == nil
		_, _ = io.WriteString(w, `{"message":"Blog post added!"}`)
	})

	res, err := c.CreatePost(context.Background(), domain.NewBlogPost{Title: "t", IsPublished: true}, nil)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if published != "true" || hasFile {
		t.Errorf("isPublished=%q hasFile=%v", published, hasFile)
	}
	if res.Message != "Blog post added!" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestSubscribe_returnsServerMessage(t *testing.T) {
	t.Parallel()

	var body map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"message":"Subscribed!"}`)
	})

	msg, err := c.Subscribe(context.Background(), "a@b.co")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if msg != "Subscribed!" || body["email"] != "a@b.co" {
		t.Errorf("msg=%q body=%v", msg, body)
	}
}
