package handlers

import (
	"aineoo/internal/apperr"
	"aineoo/internal/config"
	"aineoo/internal/wordpress"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"
)

const maxPostsPerPage = 100

// NewPostsCmd creates the command listing posts on the WordPress site
func NewPostsCmd() *cobra.Command {
	var (
		count  int
		page   int
		search string
		status string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "posts [id]",
		Short: "List posts on the WordPress site, or show one post",
		Long: `List recent posts on the configured WordPress site, or show one post with
its categories, tags and image URLs when an id is given.

Examples:
  aineoo posts --count 20
  aineoo posts --search 客服
  aineoo posts 1234 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appConfig
			if err := cfg.Validate(config.Requirements{WordPress: true}); err != nil {
				return err
			}
			wp := newWordPressClient(cfg)
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				id, err := strconv.Atoi(args[0])
				if err != nil || id <= 0 {
					return fmt.Errorf("post id must be a positive integer, got %q: %w", args[0], apperr.ErrInvalidInput)
				}
				post, err := wp.GetPost(cmd.Context(), id)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(out, post)
				}
				printPost(out, post)
				return nil
			}

			if count <= 0 || count > maxPostsPerPage {
				return fmt.Errorf("--count must be within 1-%d: %w", maxPostsPerPage, apperr.ErrInvalidInput)
			}
			posts, err := wp.ListPosts(cmd.Context(), wordpress.ListOptions{
				PerPage: count,
				Page:    page,
				Status:  status,
				Search:  strings.TrimSpace(search),
			})
			if err != nil {
				return err
			}
			if asJSON {
				if posts == nil {
					posts = []wordpress.Post{}
				}
				return writeJSON(out, posts)
			}
			printPosts(out, cfg.WordPress.BaseURL, posts)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "posts per page (max 100)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&search, "search", "", "only posts matching this text")
	cmd.Flags().StringVar(&status, "status", wordpress.StatusPublish, "post status: publish or draft")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print posts as JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPosts(w io.Writer, site string, posts []wordpress.Post) {
	if len(posts) == 0 {
		fmt.Fprintf(w, "No posts found on %s\n", site)
		return
	}

	fmt.Fprintf(w, "📰 %d posts on %s\n\n", len(posts), site)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tIMAGES\tTITLE")
	for _, p := range posts {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", p.ID, postDate(p.Date), len(p.ImageURLs()), p.Title)
	}
	_ = tw.Flush()
}

func printPost(w io.Writer, p *wordpress.Post) {
	fmt.Fprintln(w, titleStyle.Render(p.Title))
	fmt.Fprintf(w, "%s%d\n", labelStyle.Render("ID"), p.ID)
	fmt.Fprintf(w, "%s%s\n", labelStyle.Render("Date"), postDate(p.Date))
	fmt.Fprintf(w, "%s%s\n", labelStyle.Render("Slug"), p.Slug)
	fmt.Fprintf(w, "%s%s\n", labelStyle.Render("Link"), p.Link)
	if len(p.Categories) > 0 {
		fmt.Fprintf(w, "%s%s\n", labelStyle.Render("Categories"), strings.Join(p.Categories, ", "))
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "%s%s\n", labelStyle.Render("Tags"), strings.Join(p.Tags, ", "))
	}
	if p.Excerpt != "" {
		fmt.Fprintf(w, "%s%s\n", labelStyle.Render("Excerpt"), p.Excerpt)
	}
	fmt.Fprintf(w, "%s%d characters\n", labelStyle.Render("Content"), utf8.RuneCountInString(p.Content))

	images := p.ImageURLs()
	fmt.Fprintf(w, "%s%d\n", labelStyle.Render("Images"), len(images))
	for _, u := range images {
		fmt.Fprintf(w, "   %s\n", u)
	}
}

// postDate trims a WordPress timestamp to its date
func postDate(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}
