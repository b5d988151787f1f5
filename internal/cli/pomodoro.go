package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/dev-tools-mcp/internal/pomodoro"
)

func pomodoroCmd(opts *rootOptions) *cobra.Command {
	var work, brk, long, every, phases int
	var plan bool

	cmd := &cobra.Command{
		Use:   "pomodoro",
		Short: "Run a pomodoro timer in the terminal",
		Long: "Counts down work and break phases, moving on automatically.\n" +
			"Stops after --phases phases (0 runs until interrupted). With --plan\n" +
			"it only prints the upcoming phases.\n\n" +
			"Controls (type a key, then Enter): p or space pauses and resumes,\n" +
			"s skips to the next phase, r resets the cycle, q quits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			s := cfg.Pomodoro
			if work > 0 {
				s.WorkMinutes = work
			}
			if brk > 0 {
				s.BreakMinutes = brk
			}
			if long > 0 {
				s.LongBreakMinutes = long
			}
			if every > 0 {
				s.LongBreakEvery = every
			}

			w := cmd.OutOrStdout()
			if plan {
				n := phases
				if n == 0 {
					n = 2 * s.LongBreakEvery
				}
				if err := s.Validate(); err != nil {
					return err
				}
				printPlan(w, s.Plan(n))
				return nil
			}

			sess, err := pomodoro.NewSession(s)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runTimer(ctx, w, sess, readKeys(ctx, cmd.InOrStdin()), time.Second, time.Second, phases)
		},
	}

	cmd.Flags().IntVar(&work, "work", 0, "work minutes (default from config)")
	cmd.Flags().IntVar(&brk, "break", 0, "short break minutes")
	cmd.Flags().IntVar(&long, "long-break", 0, "long break minutes")
	cmd.Flags().IntVar(&every, "every", 0, "pomodoros between long breaks")
	cmd.Flags().IntVar(&phases, "phases", 0, "stop after this many phases")
	cmd.Flags().BoolVar(&plan, "plan", false, "print the upcoming phases and exit")
	return cmd
}

func printPlan(w io.Writer, plan []pomodoro.Phase) {
	for i, p := range plan {
		fmt.Fprintf(w, "%2d. %-10s %3d min\n", i+1, phaseName(p), p.Minutes)
	}
}

func phaseName(p pomodoro.Phase) string {
	if p.Long {
		return "long break"
	}
	return string(p.Mode)
}

// readKeys streams the bytes of r until EOF or until ctx is done, then
// closes the channel.
func readKeys(ctx context.Context, r io.Reader) <-chan byte {
	keys := make(chan byte)
	go func() {
		defer close(keys)
		br := bufio.NewReader(r)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			select {
			case keys <- b:
			case <-ctx.Done():
				return
			}
		}
	}()
	return keys
}

// runTimer ticks sess every interval, advancing it by step, and writes a
// status line per tick. A finished or skipped phase is announced and the
// next one started. Bytes from keys control the session: p or space
// toggles pause, s skips, r resets, q quits. It returns after limit
// completed phases (0 = no limit), on q, or when ctx is done.
func runTimer(ctx context.Context, w io.Writer, sess *pomodoro.Session, keys <-chan byte, interval, step time.Duration, limit int) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sess.Toggle()
	done := 0
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return nil
		case k, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			switch k {
			case 'p', ' ':
				if sess.Toggle() {
					fmt.Fprintln(w, "\nresumed")
				} else {
					fmt.Fprintln(w, "\npaused")
				}
			case 's':
				next := sess.Skip()
				done++
				fmt.Fprintf(w, "\nskipped, next: %s (%d min)\n", phaseName(next), next.Minutes)
				if limit > 0 && done >= limit {
					return nil
				}
				sess.Toggle()
			case 'r':
				sess.Reset()
				fmt.Fprintln(w, "\nreset")
				sess.Toggle()
			case 'q':
				fmt.Fprintln(w)
				return nil
			}
		case <-ticker.C:
			next, err := sess.Tick(step)
			if err != nil {
				return err
			}
			if next == nil {
				st := sess.Status()
				fmt.Fprintf(w, "\r%-5s %s  (%d done)", st.Mode, st.Clock, st.Completed)
				continue
			}

			done++
			fmt.Fprintf(w, "\nphase complete, next: %s (%d min)\n", phaseName(*next), next.Minutes)
			if limit > 0 && done >= limit {
				return nil
			}
			sess.Toggle()
		}
	}
}
