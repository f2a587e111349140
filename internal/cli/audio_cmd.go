package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/placar/internal/audio"
	"github.com/alexanderramin/placar/internal/cli/formatter"
	"github.com/alexanderramin/placar/internal/domain"
)

const cueMotivation = "motivation"

// parseCue resolves a cue name: a stage number 0-7 or "motivation".
func parseCue(name string) (audio.Cue, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == cueMotivation {
		return audio.MotivationCue(), nil
	}
	n, err := strconv.Atoi(name)
	if err != nil || !domain.Stage(n).Valid() {
		return audio.Cue{}, fmt.Errorf("unknown cue %q: use a stage 0-7 or %q", name, cueMotivation)
	}
	return audio.StageCue(domain.Stage(n)), nil
}

func newCueCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "cue <stage|motivation>",
		Short: "Render a stage cue or the motivation fanfare to a WAV file",
		Example: `  placar cue 7 -o beyond.wav
  placar cue motivation`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cue, err := parseCue(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = cue.Name + ".wav"
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			rate := app.Config.SampleRate
			if err := audio.WriteWAV(f, audio.Render(cue, rate), rate); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				formatter.StyleGreen.Render("Saved"), out,
				formatter.Dim(fmt.Sprintf("(%s, %d Hz)", cue.Length().Round(time.Millisecond), rate)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: <cue>.wav)")
	return cmd
}

func newMotivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "motivate",
		Short: "Play the 30-second motivation piece",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Motivator == nil {
				return fmt.Errorf("audio is not available")
			}
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
			defer stop()

			if !app.Motivator.Start(ctx) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Already playing."))
				return nil
			}
			defer app.Motivator.Stop()

			d := app.Motivator.Duration()
			sp := formatter.NewSpinner(cmd.ErrOrStderr(), formatter.Countdown("⚡ motivação", d))
			sp.Start()
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
			}
			sp.Stop()
			return nil
		},
	}
}
