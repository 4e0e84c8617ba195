package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/silver-talent/internal/admin"
	"github.com/honeycarbs/silver-talent/internal/contact"
	"github.com/honeycarbs/silver-talent/internal/domain"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

func (a *app) hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := admin.HashPassword(args[0])
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", hash)
			return nil
		},
	}
}

func (a *app) contactCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "contact", Short: "Show or edit the contact block"}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the public contact block",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := contact.Load(cmd.Context(), a.client, a.logger)
			printf(cmd, "Address: %s\nPhone: %s\nEmail: %s\nMap: %s\n", info.Address, info.Phone, info.Email, info.LocationMapURL)
			if info.Message != "" {
				printf(cmd, "%s\n", info.Message)
			}
			return nil
		},
	}

	var address, phone, email, mapURL string
	update := &cobra.Command{
		Use:   "update",
		Short: "Replace contact fields; omitted flags keep their current value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.dashboard(cmd)
			if err != nil {
				return err
			}
			info := d.Contact()
			flags := cmd.Flags()
			if flags.Changed("address") {
				info.Address = address
			}
			if flags.Changed("phone") {
				info.Phone = phone
			}
			if flags.Changed("contact-email") {
				info.Email = email
			}
			if flags.Changed("map-url") {
				info.LocationMapURL = mapURL
			}
			msg, err := d.UpdateContact(cmd.Context(), info)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", msg)
			return nil
		},
	}
	update.Flags().StringVar(&address, "address", "", "office address")
	update.Flags().StringVar(&phone, "phone", "", "public phone number")
	update.Flags().StringVar(&email, "contact-email", "", "public email")
	update.Flags().StringVar(&mapURL, "map-url", "", "map embed URL")

	cmd.AddCommand(get, update)
	return cmd
}

func (a *app) vacancyCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "vacancy", Short: "Manage vacancies"}

	var in domain.NewVacancy
	var logoPath string
	add := &cobra.Command{
		Use:   "add",
		Short: "Post a vacancy; category and type default to the first listed option",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.dashboard(cmd)
			if err != nil {
				return err
			}
			defaults := d.VacancyDefaults()
			if in.Category == "" {
				in.Category = defaults.Category
			}
			if in.Type == "" {
				in.Type = defaults.Type
			}

			var logo *silvertalent.Upload
			if logoPath != "" {
				if logo, err = readUpload(admin.Logo, logoPath); err != nil {
					return err
				}
			}

			msg, err := d.AddVacancy(cmd.Context(), in, logo)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", msg)
			return nil
		},
	}
	f := add.Flags()
	f.StringVar(&in.Title, "title", "", "job title")
	f.StringVar(&in.Company, "company", "", "hiring company")
	f.StringVar(&in.Location, "location", "", "job location")
	f.StringVar(&in.Type, "type", "", "job type")
	f.StringVar(&in.Salary, "salary", "", "salary text")
	f.StringVar(&in.Category, "category", "", "job category")
	f.StringVar(&in.Description, "description", "", "job description")
	f.StringVar(&in.Skills, "skills", "", "comma separated skills")
	f.StringVar(&logoPath, "logo", "", "company logo image (jpeg, png, webp or svg, max 2MB)")

	cmd.AddCommand(add)
	return cmd
}

func (a *app) categoryCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "category", Short: "Manage blog categories"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List blog categories with their IDs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := a.client.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range categories {
				printf(cmd, "%s\t%s\t%s\n", c.ID, c.Slug, c.Name)
			}
			return nil
		},
	}

	var in domain.NewBlogCategory
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a blog category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.dashboard(cmd)
			if err != nil {
				return err
			}
			msg, err := d.AddBlogCategory(cmd.Context(), in)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", msg)
			for _, c := range d.BlogCategories() {
				printf(cmd, "  %s\t%s\n", c.ID, c.Name)
			}
			return nil
		},
	}
	add.Flags().StringVar(&in.Name, "name", "", "category name")
	add.Flags().StringVar(&in.Description, "description", "", "category description")

	cmd.AddCommand(list, add)
	return cmd
}

func (a *app) postCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "post", Short: "Manage blog posts"}

	var in domain.NewBlogPost
	var contentPath, imagePath string
	add := &cobra.Command{
		Use:   "add",
		Short: "Publish a blog post with its featured image",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.dashboard(cmd)
			if err != nil {
				return err
			}
			defaults := d.PostDefaults()
			if in.CategoryID == "" {
				in.CategoryID = defaults.CategoryID
			}
			if in.ReadTime == "" {
				in.ReadTime = defaults.ReadTime
			}

			if contentPath != "" {
				b, err := os.ReadFile(contentPath)
				if err != nil {
					return fmt.Errorf("read content: %w", err)
				}
				in.Content = string(b)
			}

			var image *silvertalent.Upload
			if imagePath != "" {
				if image, err = readUpload(admin.FeaturedImage, imagePath); err != nil {
					return err
				}
			}

			msg, err := d.AddBlogPost(cmd.Context(), in, image)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", msg)
			return nil
		},
	}
	f := add.Flags()
	f.StringVar(&in.Title, "title", "", "post title")
	f.StringVar(&in.Excerpt, "excerpt", "", "short summary")
	f.StringVar(&in.Content, "content", "", "post body")
	f.StringVar(&contentPath, "content-file", "", "read the post body from a file")
	f.StringVar(&in.Author, "author", "", "author name")
	f.StringVar(&in.ReadTime, "read-time", "", "read time label (default \""+domain.DefaultReadTime+"\")")
	f.StringVar(&in.CategoryID, "category-id", "", "category ID from 'category list'")
	f.StringVar(&in.Tags, "tags", "", "comma separated tags")
	f.BoolVar(&in.IsPublished, "published", false, "publish immediately")
	f.StringVar(&imagePath, "image", "", "featured image (jpeg, png or webp, max 2MB)")

	cmd.AddCommand(add)
	return cmd
}

func readUpload(kind admin.UploadKind, path string) (*silvertalent.Upload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", kind.Field, err)
	}
	defer f.Close()
	return admin.ReadUpload(kind, filepath.Base(path), f)
}
