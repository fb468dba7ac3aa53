package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	professionaldto "writerly/internal/modules/professional/dto"
	profiledto "writerly/internal/modules/profile/dto"
)

func newDashboardCmd(flags *globalFlags) *cobra.Command {
	dashboard := &cobra.Command{Use: "dashboard", Short: "Author statistics"}

	dashboard.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Totals and per-work numbers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			s, err := app.DashboardCLI.Stats(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "works %d  views %d  reads %d  ratings %d (avg %.2f)  followers %d\n\n",
				s.TotalWorks, s.TotalViews, s.TotalReads, s.TotalRatings, s.AverageRating, s.TotalFollowers)
			for _, w := range s.Works {
				_, _ = fmt.Fprintf(out, "%6d views %5d reads %5.1f%%  %.1f★  %s\n",
					w.Views, w.Reads, w.ReadRate, w.AverageRating, w.Title)
			}
			return nil
		},
	})

	var days int
	activityCmd := &cobra.Command{
		Use:   "activity",
		Short: "Recent activity on your works",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.DashboardCLI.Activity(context.Background(), days)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no recent activity")
				return nil
			}
			for _, a := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %s\n", a.Timestamp.Local().Format("2006-01-02 15:04"), a.Type, a.Message)
			}
			return nil
		},
	}
	activityCmd.Flags().IntVar(&days, "days", 7, "look-back window in days")
	dashboard.AddCommand(activityCmd)

	return dashboard
}

func newProfileCmd(flags *globalFlags) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "View and edit profiles"}

	profile.AddCommand(&cobra.Command{
		Use:   "show [username]",
		Short: "Show a profile (default: your own)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			p, err := app.ProfileCLI.Get(context.Background(), firstArg(args))
			if err != nil {
				return err
			}
			printProfile(cmd, p)
			return nil
		},
	})

	profile.AddCommand(&cobra.Command{
		Use:   "works [username]",
		Short: "List a user's works",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.ProfileCLI.Works(context.Background(), firstArg(args))
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no works")
				return nil
			}
			for _, w := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d words\t%s\n", w.ID, w.Genre, w.WordCount, w.Title)
			}
			return nil
		},
	})

	profile.AddCommand(&cobra.Command{
		Use:   "follow <username>",
		Short: "Follow a writer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.ProfileCLI.Follow(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "following %s\n", args[0])
			return nil
		},
	})

	profile.AddCommand(&cobra.Command{
		Use:   "unfollow <username>",
		Short: "Stop following a writer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.ProfileCLI.Unfollow(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unfollowed %s\n", args[0])
			return nil
		},
	})

	var update profiledto.UpdateInput
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Edit your bio, location and website",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			p, err := app.ProfileCLI.UpdateMe(context.Background(), update.Bio, update.Location, update.Website)
			if err != nil {
				return err
			}
			printProfile(cmd, p)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&update.Bio, "bio", "", "bio (max 500 characters)")
	updateCmd.Flags().StringVar(&update.Location, "location", "", "location")
	updateCmd.Flags().StringVar(&update.Website, "website", "", "http(s) URL")
	profile.AddCommand(updateCmd)

	return profile
}

func printProfile(cmd *cobra.Command, p profiledto.ProfileOutput) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s (%s)\n", p.Username, p.Role)
	if p.Bio != "" {
		_, _ = fmt.Fprintln(out, p.Bio)
	}
	if p.Location != "" {
		_, _ = fmt.Fprintf(out, "location: %s\n", p.Location)
	}
	if p.Website != "" {
		_, _ = fmt.Fprintf(out, "website:  %s\n", p.Website)
	}
	_, _ = fmt.Fprintf(out, "works %d  followers %d  following %d\n", p.WorksCount, p.FollowersCount, p.FollowingCount)
	if p.IsFollowing != nil && *p.IsFollowing {
		_, _ = fmt.Fprintln(out, "you follow this writer")
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func newProCmd(flags *globalFlags) *cobra.Command {
	pro := &cobra.Command{Use: "pro", Short: "Tools for publishers and agents"}

	var discover professionaldto.DiscoverInput
	var genres string
	discoverCmd := &cobra.Command{
		Use:   "discover",
		Short: "Find works by filter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if genres != "" {
				discover.Genres = strings.Split(genres, ",")
			}
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.ProfessionalCLI.Discover(context.Background(), discover)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no matching works")
				return nil
			}
			for _, w := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d words\t%.1f★\t%s by %s\n",
					w.ID, w.Genre, w.WordCount, w.AverageRating, w.Title, w.AuthorUsername)
			}
			return nil
		},
	}
	discoverCmd.Flags().StringVar(&genres, "genres", "", "comma-separated genres")
	discoverCmd.Flags().IntVar(&discover.MinWordCount, "min-words", 0, "minimum word count")
	discoverCmd.Flags().IntVar(&discover.MaxWordCount, "max-words", 0, "maximum word count")
	discoverCmd.Flags().Float64Var(&discover.MinRating, "min-rating", 0, "minimum average rating")
	discoverCmd.Flags().IntVar(&discover.MinViews, "min-views", 0, "minimum views")
	pro.AddCommand(discoverCmd)

	var status string
	inboxCmd := &cobra.Command{
		Use:   "inbox",
		Short: "List submissions sent to you",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.ProfessionalCLI.Inbox(context.Background(), status)
			if err != nil {
				return err
			}
			printSubmissions(cmd, items)
			return nil
		},
	}
	inboxCmd.Flags().StringVar(&status, "status", "", "pending, reviewing, accepted or declined")
	pro.AddCommand(inboxCmd)

	var respondStatus, response string
	respondCmd := &cobra.Command{
		Use:   "respond <submission-id>",
		Short: "Answer a submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(respondStatus) == "" {
				return fmt.Errorf("--status is required")
			}
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.ProfessionalCLI.Respond(context.Background(), args[0], respondStatus, response); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "submission %s -> %s\n", args[0], respondStatus)
			return nil
		},
	}
	respondCmd.Flags().StringVar(&respondStatus, "status", "", "reviewing, accepted or declined")
	respondCmd.Flags().StringVar(&response, "message", "", "response text")
	pro.AddCommand(respondCmd)

	pro.AddCommand(&cobra.Command{
		Use:   "submissions",
		Short: "List submissions you sent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadAuthedApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.ProfessionalCLI.MySubmissions(context.Background())
			if err != nil {
				return err
			}
			printSubmissions(cmd, items)
			return nil
		},
	})

	return pro
}

func printSubmissions(cmd *cobra.Command, items []professionaldto.SubmissionOutput) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no submissions")
		return
	}
	for _, s := range items {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%-9s\t%s\t%s\n", s.ID, s.Status, s.SubmittedAt.Local().Format("2006-01-02"), s.WorkTitle)
	}
}
