package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	browsedto "writerly/internal/modules/browse/dto"
	worksdto "writerly/internal/modules/works/dto"
)

func newWorkCmd(flags *globalFlags) *cobra.Command {
	work := &cobra.Command{Use: "work", Short: "Create, read and manage works"}

	var create worksdto.CreateInput
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a work from flags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.WorksCLI.Create(context.Background(), create)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s\t%s\n", out.ID, out.Title)
			return nil
		},
	}
	createCmd.Flags().StringVar(&create.Title, "title", "", "title")
	createCmd.Flags().StringVar(&create.Genre, "genre", "", "genre")
	createCmd.Flags().StringVar(&create.Summary, "summary", "", "short summary")
	createCmd.Flags().StringVar(&create.Content, "content", "", "work text")
	createCmd.Flags().StringVar(&create.ContentRating, "rating", "", "content rating")
	work.AddCommand(createCmd)

	work.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Print a work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			w, err := app.WorksCLI.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s\nby %s  [%s]  %d words  %.1f★ (%d)  %d views\n\n",
				w.Title, w.AuthorUsername, w.Genre, w.WordCount, w.RatingAverage, w.RatingCount, w.ViewsCount)
			if w.Summary != "" {
				_, _ = fmt.Fprintf(out, "%s\n\n", w.Summary)
			}
			_, _ = fmt.Fprintln(out, w.Content)
			return nil
		},
	})

	var skip, limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List works",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.WorksCLI.List(context.Background(), skip, limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no works")
				return nil
			}
			for _, w := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", w.ID, w.Status, w.Genre, w.Title)
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&skip, "skip", 0, "offset")
	listCmd.Flags().IntVar(&limit, "limit", 20, "page size")
	work.AddCommand(listCmd)

	var upload worksdto.UploadInput
	uploadCmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Publish a work from a .md, .txt or .pdf file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			upload.Path = args[0]
			out, err := app.WorksCLI.Upload(context.Background(), upload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s\t%s (%d words)\n", out.ID, out.Title, out.WordCount)
			return nil
		},
	}
	uploadCmd.Flags().StringVar(&upload.Title, "title", "", "override title")
	uploadCmd.Flags().StringVar(&upload.Genre, "genre", "", "override genre")
	uploadCmd.Flags().StringVar(&upload.Summary, "summary", "", "override summary")
	uploadCmd.Flags().StringVar(&upload.ContentRating, "rating", "", "content rating")
	work.AddCommand(uploadCmd)

	var title, content, summary, status string
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := worksdto.UpdateInput{ID: args[0]}
			if cmd.Flags().Changed("title") {
				input.Title = &title
			}
			if cmd.Flags().Changed("content") {
				input.Content = &content
			}
			if cmd.Flags().Changed("summary") {
				input.Summary = &summary
			}
			if cmd.Flags().Changed("status") {
				input.Status = &status
			}
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.WorksCLI.Update(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\t%s\t%s\n", out.ID, out.Status, out.Title)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&title, "title", "", "new title")
	updateCmd.Flags().StringVar(&content, "content", "", "new text")
	updateCmd.Flags().StringVar(&summary, "summary", "", "new summary")
	updateCmd.Flags().StringVar(&status, "status", "", "draft or published")
	work.AddCommand(updateCmd)

	work.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.WorksCLI.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	})

	var dir string
	exportCmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a work to a Markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.WorksCLI.Export(context.Background(), args[0], dir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s -> %s\n", out.ID, out.Path)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&dir, "dir", ".", "output directory")
	work.AddCommand(exportCmd)

	return work
}

func newBrowseCmd(flags *globalFlags) *cobra.Command {
	browse := &cobra.Command{Use: "browse", Short: "Discover published works"}

	bindQuery := func(cmd *cobra.Command, q *browsedto.QueryInput) {
		cmd.Flags().StringVar(&q.Genre, "genre", "", "genre filter")
		cmd.Flags().Float64Var(&q.MinRating, "min-rating", 0, "minimum average rating")
		cmd.Flags().StringVar(&q.SortBy, "sort", "created_at", "created_at, rating_average, views_count or word_count")
		cmd.Flags().StringVar(&q.SortOrder, "order", "desc", "asc or desc")
		cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
		cmd.Flags().IntVar(&q.PageSize, "page-size", 12, "works per page")
	}

	var worksQuery browsedto.QueryInput
	worksCmd := &cobra.Command{
		Use:   "works",
		Short: "Page through works",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			page, err := app.BrowseCLI.Works(context.Background(), worksQuery)
			if err != nil {
				return err
			}
			printPage(cmd, page)
			return nil
		},
	}
	bindQuery(worksCmd, &worksQuery)
	browse.AddCommand(worksCmd)

	var searchQuery browsedto.QueryInput
	searchCmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search titles and summaries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			searchQuery.Text = strings.Join(args, " ")
			page, err := app.BrowseCLI.Search(context.Background(), searchQuery)
			if err != nil {
				return err
			}
			printPage(cmd, page)
			return nil
		},
	}
	bindQuery(searchCmd, &searchQuery)
	browse.AddCommand(searchCmd)

	browse.AddCommand(&cobra.Command{
		Use:   "genres",
		Short: "List genres with counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			genres, err := app.BrowseCLI.Genres(context.Background())
			if err != nil {
				return err
			}
			for _, g := range genres {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-20s %4d  %.1f★\n", g.Genre, g.Count, g.AvgRating)
			}
			return nil
		},
	})

	return browse
}

func printPage(cmd *cobra.Command, page browsedto.PageOutput) {
	out := cmd.OutOrStdout()
	if len(page.Works) == 0 {
		_, _ = fmt.Fprintln(out, "no works found")
		return
	}
	for _, w := range page.Works {
		_, _ = fmt.Fprintf(out, "%s\t%.1f★\t%s\t%s by %s\n", w.ID, w.RatingAverage, w.Genre, w.Title, w.AuthorUsername)
	}
	pages := make([]string, len(page.Window))
	for i, p := range page.Window {
		if p == page.Page {
			pages[i] = fmt.Sprintf("[%d]", p)
		} else {
			pages[i] = fmt.Sprintf("%d", p)
		}
	}
	_, _ = fmt.Fprintf(out, "\npage %d/%d (%d works)  %s\n", page.Page, page.TotalPages, page.Total, strings.Join(pages, " "))
}
