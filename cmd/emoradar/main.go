package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jessechan5171/emoradar/go-engine/internal/archive"
	"github.com/jessechan5171/emoradar/go-engine/internal/config"
	"github.com/jessechan5171/emoradar/go-engine/internal/emotion"
	"github.com/jessechan5171/emoradar/go-engine/internal/recommend"
	"github.com/jessechan5171/emoradar/go-engine/internal/replay"
	"github.com/jessechan5171/emoradar/go-engine/internal/session"
	"github.com/jessechan5171/emoradar/go-engine/internal/source"
	"github.com/jessechan5171/emoradar/go-engine/internal/timeline"
)

// #region main

func main() {
	rootCmd := &cobra.Command{
		Use:   "emoradar",
		Short: "Learning-emotion monitoring and intervention engine",
	}

	rootCmd.AddCommand(monitorCmd())
	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(sessionsCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// #endregion main

// #region monitor

func monitorCmd() *cobra.Command {
	var (
		inputPath   string
		configPath  string
		phase       string
		archivePath string
		noArchive   bool
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Run a monitoring session over a recorded sample stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if phase != "" {
				if !recommend.Known(recommend.Phase(phase)) {
					return fmt.Errorf("unknown learning phase %q", phase)
				}
				cfg.Session.Phase = phase
			}
			if archivePath != "" {
				cfg.ArchivePath = archivePath
			}

			src, err := source.NewFileSource(inputPath)
			if err != nil {
				return err
			}
			defer src.Close()

			var store *archive.Store
			if !noArchive {
				store, err = archive.NewStore(cfg.ArchivePath)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			sessCfg := cfg.ToSessionConfig()
			sess := session.New(sessCfg)
			fmt.Printf("session %s  phase=%s\n", sess.ID(), sessCfg.Phase)

			if store != nil {
				cfgJSON, err := json.Marshal(replay.FixtureConfigFrom(sessCfg))
				if err != nil {
					return fmt.Errorf("encode session config: %w", err)
				}
				if err := store.BeginSession(sess.ID(), sess.StartedAt(), string(sessCfg.Phase), string(cfgJSON)); err != nil {
					return err
				}
			}

			if err := runStream(sess, src, store); err != nil {
				return err
			}

			if store != nil {
				if err := store.FinishSession(sess.ID(), time.Now().UTC(), sess.Timeline()); err != nil {
					return err
				}
			}

			printSummary(sess.Summary())
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSONL sample stream (required)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().StringVarP(&phase, "phase", "p", "", "learning phase override")
	cmd.Flags().StringVar(&archivePath, "archive", "", "archive database path override")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false, "run without persisting the session")
	cmd.MarkFlagRequired("input")
	return cmd
}

// runStream feeds every source sample through the session, printing
// snapshots and logging interventions as they fire.
func runStream(sess *session.Session, src source.Source, store *archive.Store) error {
	for {
		sample, err := src.Next()
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, source.ErrNoFace), errors.Is(err, source.ErrUnavailable):
			// No new sample this frame; the last snapshot stands.
			fmt.Printf("%8s  (%v)\n", "-", err)
			continue
		default:
			return fmt.Errorf("read sample: %w", err)
		}

		snap, err := sess.Process(sample.Offset, sample.Scores, sample.Confidence)
		if err != nil {
			var malformed *emotion.MalformedScoreError
			var outOfOrder *timeline.OutOfOrderError
			if errors.As(err, &malformed) || errors.As(err, &outOfOrder) {
				fmt.Printf("%8s  dropped sample: %v\n", sample.Offset, err)
				continue
			}
			return err
		}

		printSnapshot(snap)

		if snap.Event != nil && store != nil {
			if err := store.LogIntervention(sess.ID(), snap.Event.Event, snap.Event.Recommendation); err != nil {
				return err
			}
		}
	}
}

func printSnapshot(snap session.Snapshot) {
	fmt.Printf("%8s  eng=%.2f conf=%.2f cnfu=%.2f frus=%.2f  state=%s\n",
		snap.Offset,
		snap.Vector.Get(emotion.Engagement),
		snap.Vector.Get(emotion.Confidence),
		snap.Vector.Get(emotion.Confusion),
		snap.Vector.Get(emotion.Frustration),
		snap.State.Machine,
	)
	if snap.Event != nil {
		ev := snap.Event.Event
		rec := snap.Event.Recommendation
		fmt.Printf("%8s  >> %s [%s]  %s (%s)\n",
			"", ev.Category, ev.Urgency, rec.Guidance, rec.Action)
	}
}

func printSummary(sum session.Summary) {
	fmt.Printf("\nSession %s: %d samples over %s\n", sum.SessionID, sum.Samples, sum.Span)
	fmt.Printf("%-14s| %-8s| %-8s| %s\n", "Dimension", "Mean", "Min", "Max")
	for _, d := range emotion.Dimensions() {
		stats := sum.Dimensions[d]
		fmt.Printf("%-14s| %-8.2f| %-8.2f| %.2f\n", d, stats.Mean, stats.Min, stats.Max)
	}
	if len(sum.Events) > 0 {
		fmt.Println("\nInterventions:")
		for category, n := range sum.Events {
			fmt.Printf("  %s: %d\n", category, n)
		}
	}
}

// #endregion monitor

// #region replay

func replayCmd() *cobra.Command {
	var fixturePath string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a fixture and compare against its expected events",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := replay.LoadFixture(fixturePath)
			if err != nil {
				return err
			}

			results, summary, err := replay.Run(f)
			if err != nil {
				return err
			}

			printComparison(results, f.ExpectedEvents)
			fmt.Printf("\nSummary: %d samples (%d skipped), %d events, %d expected, %d diverge\n",
				summary.Samples, summary.Skipped, summary.Events, summary.Expected, summary.Diverged)

			if summary.Diverged > 0 {
				return fmt.Errorf("replay diverged on %d event(s)", summary.Diverged)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fixturePath, "fixture", "f", "", "fixture JSON path (required)")
	cmd.MarkFlagRequired("fixture")
	return cmd
}

// printComparison outputs an expected-vs-replayed table, one row per
// event position.
func printComparison(results []replay.Result, expected []replay.FixtureExpectedEvent) {
	fmt.Printf("%-4s| %-35s| %-35s| %s\n", "#", "Expected", "Replayed", "Match")

	divergences := replay.Compare(results, expected)
	diverged := make(map[int]bool, len(divergences))
	for _, d := range divergences {
		diverged[d.Index] = true
	}

	n := len(results)
	if len(expected) > n {
		n = len(expected)
	}
	for i := 0; i < n; i++ {
		exp, got := "-", "-"
		if i < len(expected) {
			exp = fmt.Sprintf("%s/%s@%s", expected[i].Category, expected[i].Urgency,
				time.Duration(expected[i].OffsetMs)*time.Millisecond)
		}
		if i < len(results) {
			got = fmt.Sprintf("%s/%s@%s", results[i].Category, results[i].Urgency, results[i].TriggeredAt)
		}
		match := "OK"
		if diverged[i] {
			match = "DIFF"
		}
		fmt.Printf("%-4d| %-35s| %-35s| %s\n", i, exp, got, match)
	}
}

// #endregion replay

// #region sessions

func sessionsCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "sessions [session-id]",
		Short: "List archived sessions, or show one session's interventions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := archive.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				return printInterventions(store, args[0])
			}

			records, err := store.ListSessions(limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No archived sessions.")
				return nil
			}
			for _, rec := range records {
				status := "open"
				if rec.Archived {
					status = fmt.Sprintf("%d samples", rec.SampleCount)
				}
				fmt.Printf("%s  %s  %-12s  %s\n",
					rec.SessionID[:8], rec.StartedAt.Format("2006-01-02 15:04:05"), rec.Phase, status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "emoradar.db", "archive database path")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of sessions to show")
	return cmd
}

func printInterventions(store *archive.Store, prefix string) error {
	id, err := resolveSessionID(store, prefix)
	if err != nil {
		return err
	}

	records, err := store.Interventions(id)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No interventions logged for this session.")
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%8s  %s [%s]  %s\n", rec.TriggeredAt, rec.Category, rec.Urgency, rec.Guidance)
	}
	return nil
}

// resolveSessionID finds the full session ID for a prefix.
func resolveSessionID(store *archive.Store, prefix string) (string, error) {
	records, err := store.ListSessions(100)
	if err != nil {
		return "", err
	}
	for _, rec := range records {
		if rec.SessionID == prefix || len(prefix) >= 4 && len(rec.SessionID) >= len(prefix) && rec.SessionID[:len(prefix)] == prefix {
			return rec.SessionID, nil
		}
	}
	return "", fmt.Errorf("session not found: %s", prefix)
}

// #endregion sessions

// #region export

func exportCmd() *cobra.Command {
	var (
		dbPath  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export [session-id]",
		Short: "Export an archived session as a replay fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := archive.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := resolveSessionID(store, args[0])
			if err != nil {
				return err
			}

			f, err := buildFixture(store, id)
			if err != nil {
				return err
			}

			if err := replay.SaveFixture(outPath, f); err != nil {
				return err
			}
			fmt.Printf("Exported %d samples, %d expected events to %s\n",
				len(f.Samples), len(f.ExpectedEvents), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "emoradar.db", "archive database path")
	cmd.Flags().StringVarP(&outPath, "out", "o", "fixture.json", "output fixture path")
	return cmd
}

// buildFixture reconstructs a replay fixture from an archived session:
// the stored config, the decompressed timeline as samples, and the
// intervention log as expected events.
func buildFixture(store *archive.Store, sessionID string) (*replay.Fixture, error) {
	records, err := store.ListSessions(100)
	if err != nil {
		return nil, err
	}
	var rec *archive.SessionRecord
	for i := range records {
		if records[i].SessionID == sessionID {
			rec = &records[i]
			break
		}
	}
	if rec == nil {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}

	var cfg replay.FixtureConfig
	if err := json.Unmarshal([]byte(rec.ConfigJSON), &cfg); err != nil {
		return nil, fmt.Errorf("decode archived config: %w", err)
	}

	entries, err := store.LoadTimeline(sessionID)
	if err != nil {
		return nil, err
	}
	samples := make([]replay.FixtureSample, len(entries))
	for i, e := range entries {
		scores := make(map[string]float64, len(emotion.Dimensions()))
		for d, v := range e.Vector.Values() {
			scores[string(d)] = float64(v)
		}
		samples[i] = replay.FixtureSample{
			OffsetMs:   e.Offset.Milliseconds(),
			Scores:     scores,
			Confidence: e.SourceConfidence,
		}
	}

	interventions, err := store.Interventions(sessionID)
	if err != nil {
		return nil, err
	}
	expected := make([]replay.FixtureExpectedEvent, len(interventions))
	for i, iv := range interventions {
		expected[i] = replay.FixtureExpectedEvent{
			Category: iv.Category,
			Urgency:  iv.Urgency,
			OffsetMs: iv.TriggeredAt.Milliseconds(),
		}
	}

	return &replay.Fixture{
		Description:    fmt.Sprintf("Exported from session %s", sessionID),
		Config:         cfg,
		Phase:          rec.Phase,
		Samples:        samples,
		ExpectedEvents: expected,
	}, nil
}

// #endregion export
