package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexanderramin/placar/internal/chart"
	"github.com/alexanderramin/placar/internal/cli/formatter"
	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/imageref"
	"github.com/alexanderramin/placar/internal/service"
)

const (
	flagEntry  = "entry"
	flagWidth  = "width"
	flagHeight = "height"
	flagClient = "client"
	flagOurs   = "ours"

	summaryChartHeight = 16
	defaultTermWidth   = 80
)

func newSummaryCmd(app *App) *cobra.Command {
	var (
		entries map[string]string
		width   int
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the board once",
		Example: `  placar summary
  placar summary --entry 8=1 --entry 7=0.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyEntries(commandContext(cmd), app, entries); err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), app, width)
		},
	}
	cmd.Flags().StringToStringVar(&entries, flagEntry, nil, "week=value entries to apply first")
	cmd.Flags().IntVar(&width, flagWidth, 0, "chart width in columns (default: terminal width)")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var (
		entries    map[string]string
		opts       chart.PNGOptions
		clientPath string
		oursPath   string
	)
	cmd := &cobra.Command{
		Use:   "export [file.png]",
		Short: "Render the chart to a PNG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			if err := applyEntries(ctx, app, entries); err != nil {
				return err
			}
			if err := loadPhoto(ctx, app, imageref.SlotClient, clientPath); err != nil {
				return err
			}
			if err := loadPhoto(ctx, app, imageref.SlotOurs, oursPath); err != nil {
				return err
			}
			path := "placar.png"
			if len(args) == 1 {
				path = args[0]
			}
			if err := exportPNG(app, app.Scoreboard.Board(), path, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("Saved"), path)
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&entries, flagEntry, nil, "week=value entries to apply first")
	cmd.Flags().IntVar(&opts.Width, flagWidth, 0, "image width in pixels")
	cmd.Flags().IntVar(&opts.Height, flagHeight, 0, "image height in pixels")
	cmd.Flags().StringVar(&clientPath, flagClient, "", "picture for the target marker")
	cmd.Flags().StringVar(&oursPath, flagOurs, "", "picture for the progress marker")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// applyEntries sets week entries given on the command line, oldest week
// first so the journal reads in plan order.
func applyEntries(ctx context.Context, app *App, entries map[string]string) error {
	weeks := make([]int, 0, len(entries))
	texts := make(map[int]string, len(entries))
	for k, v := range entries {
		w, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("invalid week %q in --%s", k, flagEntry)
		}
		weeks = append(weeks, w)
		texts[w] = v
	}
	sort.Sort(sort.Reverse(sort.IntSlice(weeks)))
	for _, w := range weeks {
		if _, err := app.Scoreboard.SetEntry(ctx, domain.WeekIndex(w), texts[w]); err != nil {
			return err
		}
	}
	return nil
}

func loadPhoto(ctx context.Context, app *App, slot imageref.SlotName, path string) error {
	if path == "" {
		return nil
	}
	if app.Photos == nil {
		return fmt.Errorf("photos are not available")
	}
	if err := app.Photos.Load(ctx, slot, path); err != nil {
		return fmt.Errorf("loading %s photo: %w", slot, err)
	}
	return nil
}

// boardPlot prepares the chart for board, with marker pictures when the
// photo service has them.
func boardPlot(app *App, board service.Board) chart.Plot {
	opts := chart.Options{
		Title:  app.Config.Title,
		YLabel: app.Config.YLabel,
		YMin:   app.Config.YMin,
		YMax:   app.Config.YMax,
	}
	if app.Photos != nil {
		opts.ProgressImage, opts.TargetImage = app.Photos.Markers(board.Current().Stage)
	}
	return chart.New(board.Snapshot, opts)
}

func exportPNG(app *App, board service.Board, path string, opts chart.PNGOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := chart.RenderPNG(f, boardPlot(app, board), opts); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

func writeSummary(w io.Writer, app *App, width int) error {
	if width <= 0 {
		width = terminalWidth()
	}
	board := app.Scoreboard.Board()
	plot := boardPlot(app, board)
	out := formatter.FormatSummary(app.Config.Title, board,
		chart.RenderTerminal(plot, width, summaryChartHeight, formatter.ChartPaint))
	_, err := fmt.Fprintln(w, out)
	return err
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}
