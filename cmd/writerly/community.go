package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
)

func newBookmarkCmd(flags *globalFlags) *cobra.Command {
	bookmark := &cobra.Command{Use: "bookmark", Short: "Manage bookmarks"}

	bookmark.AddCommand(&cobra.Command{
		Use:   "add <work-id>",
		Short: "Bookmark a work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.EngagementCLI.AddBookmark(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bookmarked %s\n", args[0])
			return nil
		},
	})

	bookmark.AddCommand(&cobra.Command{
		Use:   "remove <work-id>",
		Short: "Remove a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if _, err := app.EngagementCLI.RemoveBookmark(context.Background(), args[0], nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed bookmark %s\n", args[0])
			return nil
		},
	})

	bookmark.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List bookmarked works",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.EngagementCLI.Bookmarks(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no bookmarks")
				return nil
			}
			for _, b := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s by %s\n", b.WorkID, b.WorkGenre, b.WorkTitle, b.WorkAuthorUsername)
			}
			return nil
		},
	})

	bookmark.AddCommand(&cobra.Command{
		Use:   "check <work-id>",
		Short: "Report whether a work is bookmarked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ok, err := app.EngagementCLI.IsBookmarked(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bookmarked=%t\n", ok)
			return nil
		},
	})

	return bookmark
}

func newCommentCmd(flags *globalFlags) *cobra.Command {
	comment := &cobra.Command{Use: "comment", Short: "Read and write comments"}

	comment.AddCommand(&cobra.Command{
		Use:   "list <work-id>",
		Short: "List comments on a work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.EngagementCLI.Comments(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no comments")
				return nil
			}
			for _, c := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s: %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"), c.Username, c.Content)
			}
			return nil
		},
	})

	comment.AddCommand(&cobra.Command{
		Use:   "add <work-id> <text>",
		Short: "Comment on a work you have read",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.EngagementCLI.AddComment(context.Background(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "comment posted (%d total)\n", len(items))
			return nil
		},
	})

	return comment
}

func newRateCmd(flags *globalFlags) *cobra.Command {
	var score int
	var review string
	rate := &cobra.Command{
		Use:   "rate <work-id>",
		Short: "Rate a work you have read (1-5)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.EngagementCLI.Rate(context.Background(), args[0], score, review); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rated %s %d/5\n", args[0], score)
			return nil
		},
	}
	rate.Flags().IntVar(&score, "score", 0, "score from 1 to 5")
	rate.Flags().StringVar(&review, "review", "", "optional review text")
	return rate
}

func newReadingCmd(flags *globalFlags) *cobra.Command {
	reading := &cobra.Command{Use: "reading", Short: "Reading progress and unlocks"}

	reading.AddCommand(&cobra.Command{
		Use:   "validation <work-id>",
		Short: "Show whether commenting and rating are unlocked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ReadingCLI.Validation(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "can_comment=%t can_rate=%t\n", out.CanComment, out.CanRate)
			if out.Message != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			}
			return nil
		},
	})

	var limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List reading sessions completed on this machine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.ReadingCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no completed sessions")
				return nil
			}
			for _, h := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%ds\t%.0f%%\n",
					h.CompletedAt.Local().Format("2006-01-02 15:04"), h.WorkID, h.TimeOnPage, h.ScrollDepth)
			}
			return nil
		},
	}
	historyCmd.Flags().IntVar(&limit, "limit", 20, "max entries")
	reading.AddCommand(historyCmd)

	return reading
}

func newNotificationsCmd(flags *globalFlags) *cobra.Command {
	notifications := &cobra.Command{Use: "notifications", Short: "Read notifications"}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.NotificationsCLI.List(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(out.Items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no notifications")
				return nil
			}
			for _, n := range out.Items {
				marker := " "
				if !n.Read {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\n", marker, n.ID, n.Title, n.Message)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d unread\n", out.Unread)
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 50, "max entries")
	notifications.AddCommand(listCmd)

	notifications.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "Print the unread count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			n, err := app.NotificationsCLI.UnreadCount(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	})

	notifications.AddCommand(&cobra.Command{
		Use:   "read <id>",
		Short: "Mark one notification read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.NotificationsCLI.MarkRead(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "marked %s read\n", args[0])
			return nil
		},
	})

	notifications.AddCommand(&cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification read",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.NotificationsCLI.MarkAllRead(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all notifications marked read")
			return nil
		},
	})

	notifications.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Poll the unread count until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			last := -1
			err = app.NotificationsCLI.Watch(ctx, func(count int) {
				if count == last {
					return
				}
				last = count
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unread: %d\n", count)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	})

	return notifications
}
