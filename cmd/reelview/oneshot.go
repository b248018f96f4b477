package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/reelview/internal/core"
	"github.com/vadimtrunov/reelview/internal/view"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list <popular|top-rated|random>",
		Short:     "Print a listing",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"popular", "top-rated", "random"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := core.ParseKind(args[0])
			if !ok || kind == core.KindSearch {
				return fmt.Errorf("unknown listing %q: use popular, top-rated or random", args[0])
			}
			return runListing(cmd.Context(), cmd.OutOrStdout(), kind, "")
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <title...>",
		Short: "Search titles by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("search query must not be empty")
			}
			return runListing(cmd.Context(), cmd.OutOrStdout(), core.KindSearch, query)
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the details and recommendations for a title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q: must be a positive number", args[0])
			}
			return runShow(cmd.Context(), cmd.OutOrStdout(), id)
		},
	}
}

func commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func runListing(parent context.Context, w io.Writer, kind core.Kind, query string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger, closeLog, err := fileLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := commandContext(parent)
	defer cancel()

	client, images := newCatalog(cfg, logger)
	items, err := client.List(ctx, kind, query)
	if err != nil {
		logger.Error("listing failed", "kind", kind, "error", err)
		return errors.New(view.FailureMessage(err))
	}
	res := view.BuildResults(kind, query, items, images)
	printResults(w, &res)
	return nil
}

func runShow(parent context.Context, w io.Writer, id int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger, closeLog, err := fileLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := commandContext(parent)
	defer cancel()

	client, images := newCatalog(cfg, logger)
	item, err := client.Detail(ctx, id)
	if err != nil {
		logger.Error("detail failed", "id", id, "error", err)
		return errors.New(view.DetailFailureMessage(err))
	}
	d := view.BuildDetail(item, images)

	recItems, recErr := client.Recommendations(ctx, id)
	if recErr != nil {
		logger.Warn("recommendations failed", "id", id, "error", recErr)
	}
	printDetail(w, &d, view.RecsOutcome(recItems, recErr, images))
	return nil
}

// printResults writes a listing page as a numbered list.
func printResults(w io.Writer, res *view.Results) {
	fmt.Fprintln(w, styleHeader.Render(res.Heading))
	if res.Empty {
		fmt.Fprintln(w, styleDim.Render(res.Message))
		return
	}
	for i := range res.Cards {
		c := &res.Cards[i]
		line := fmt.Sprintf("%3d. %s (%s)", i+1, c.Title, c.Year)
		if c.Rating != "" {
			line += " " + styleStar.Render(c.Rating)
		}
		fmt.Fprintln(w, line)
		meta := "id " + strconv.Itoa(c.ID)
		if c.Genres != "" {
			meta += " · " + c.Genres
		}
		fmt.Fprintln(w, "     "+styleDim.Render(meta))
	}
}

// printDetail writes the detail view followed by the recommendation list.
func printDetail(w io.Writer, d *view.Detail, recs view.Recs) {
	fmt.Fprintln(w, styleHeader.Render(d.TitleLine()))
	if line := d.OriginalTitleLine(); line != "" {
		fmt.Fprintln(w, styleDim.Render(line))
	}
	fmt.Fprintln(w, d.MetaRow())
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleInfo.Render(view.LabelOverview))
	fmt.Fprintln(w, d.Overview)
	fmt.Fprintln(w)
	for _, line := range d.Credits() {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, styleDim.Render("Poster: "+d.Poster.URL))
	fmt.Fprintln(w)

	fmt.Fprintln(w, styleInfo.Render(view.LabelRecs))
	if len(recs.Cards) == 0 {
		fmt.Fprintln(w, styleDim.Render(recs.Message))
		return
	}
	for i := range recs.Cards {
		r := &recs.Cards[i]
		line := fmt.Sprintf("  • %s (%s)", r.Title, r.Year)
		if r.Match != "" {
			line += " " + styleDim.Render(r.Match)
		}
		fmt.Fprintln(w, line+styleDim.Render(fmt.Sprintf("  [%d]", r.ID)))
	}
}
