package cli

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nkov/tuneup/internal/config"
	"github.com/nkov/tuneup/internal/exitcode"
	"github.com/nkov/tuneup/internal/logger"
	"github.com/nkov/tuneup/internal/maint"
	"github.com/nkov/tuneup/internal/op"
	"github.com/nkov/tuneup/internal/output"
)

func newRunCommand(app *AppContext) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run [operation]",
		Short: "Run one maintenance operation without the UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runInteractive(app)
			}

			cfg, err := loadConfig(app)
			if err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}
			if err := config.Validate(cfg); err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}

			catalog := maint.Catalog(maint.CatalogOptions{ExtraTempRoots: cfg.Ops.ExtraTempDirs})
			operation, ok := maint.Find(catalog, strings.TrimSpace(args[0]))
			if !ok {
				kinds := make([]string, 0, len(catalog))
				for _, o := range catalog {
					kinds = append(kinds, o.Kind)
				}
				sort.Strings(kinds)
				return withExitCode(exitcode.InvalidUsage,
					fmt.Errorf("unknown operation %q (available: %s)", args[0], strings.Join(kinds, ", ")))
			}

			var emitter output.EventEmitter
			if app.Opts.JSON {
				emitter = output.NewJSONEmitter(app.IO.Out)
			} else {
				emitter = output.NewHumanEmitter(app.IO.Out, app.IO.ErrOut, app.Opts.Quiet)
			}

			// Verbose runs log straight to the terminal; otherwise
			// diagnostics go to the session log file.
			log := zerolog.Nop()
			closeLog := func() error { return nil }
			if app.Opts.Verbose && !app.Opts.JSON {
				log = logger.NewConsoleLogger(app.IO.ErrOut, true)
			} else {
				log, closeLog, err = openFileLogger(cfg)
				if err != nil {
					return withExitCode(exitcode.RuntimeFailure, err)
				}
			}
			defer closeLog()

			opTimeout := time.Duration(cfg.Ops.CommandTimeoutSeconds) * time.Second
			if cmd.Flags().Changed("timeout") {
				opTimeout = timeout
			}

			runID := uuid.NewString()
			log.Info().Str("kind", operation.Kind).Str("run_id", runID).Msg("headless run started")
			emitter.Emit(output.Event{
				Timestamp: time.Now(),
				Level:     output.LevelInfo,
				Event:     output.EventOperationStarted,
				Kind:      operation.Kind,
				RunID:     runID,
				Message:   fmt.Sprintf("starting %s", operation.Title),
			})

			handle := op.Start(operation.Script, op.Options{Timeout: opTimeout})
			defer handle.Close()

			interrupts := make(chan os.Signal, 1)
			signal.Notify(interrupts, interruptSignals()...)
			defer signal.Stop(interrupts)

			ticker := time.NewTicker(time.Duration(cfg.UI.TickIntervalMS) * time.Millisecond)
			defer ticker.Stop()

			state := op.StateIdle
			stats := op.Stats{}
			cancelled := false

			for finished := false; !finished; {
				select {
				case <-interrupts:
					if cancelled {
						continue
					}
					cancelled = true
					handle.Cancel()
					log.Warn().Str("run_id", runID).Msg("interrupt received")
					emitter.Emit(output.Event{
						Timestamp: time.Now(),
						Level:     output.LevelWarn,
						Event:     output.EventOperationLog,
						Kind:      operation.Kind,
						RunID:     runID,
						Message:   "interrupt received, waiting for the current step to finish",
					})

				case <-ticker.C:
					for i := 0; i < cfg.UI.PollBudget && !finished; i++ {
						msg, ok := handle.TryNext()
						if !ok {
							break
						}
						switch msg := msg.(type) {
						case op.LogMsg:
							level := output.LevelInfo
							if msg.Stderr {
								level = output.LevelWarn
							}
							emitter.Emit(output.Event{
								Timestamp: time.Now(),
								Level:     level,
								Event:     output.EventOperationLog,
								Kind:      operation.Kind,
								RunID:     runID,
								Message:   msg.Text,
							})
						case op.StateMsg:
							state = msg.State
						case op.StatsMsg:
							stats = msg.Stats
							emitter.Emit(output.Event{
								Timestamp: time.Now(),
								Level:     output.LevelInfo,
								Event:     output.EventOperationStats,
								Kind:      operation.Kind,
								RunID:     runID,
								Message:   fmt.Sprintf("deleted %d, failed %d, freed %d bytes", stats.Deleted, stats.Failed, stats.BytesFreed),
								Details: map[string]any{
									"deleted":     stats.Deleted,
									"failed":      stats.Failed,
									"bytes_freed": stats.BytesFreed,
								},
							})
						case op.ErrorMsg:
							log.Error().Str("run_id", runID).Msg(msg.Text)
							emitter.Emit(output.Event{
								Timestamp: time.Now(),
								Level:     output.LevelError,
								Event:     output.EventOperationError,
								Kind:      operation.Kind,
								RunID:     runID,
								Message:   msg.Text,
							})
						case op.DoneMsg:
							finished = true
						}
					}
				}
			}

			emitter.Emit(output.Event{
				Timestamp: time.Now(),
				Level:     finishedLevel(state),
				Event:     output.EventOperationFinished,
				Kind:      operation.Kind,
				RunID:     runID,
				Message:   fmt.Sprintf("%s finished: %s", operation.Title, state),
				Details: map[string]any{
					"state":       state.String(),
					"deleted":     stats.Deleted,
					"failed":      stats.Failed,
					"bytes_freed": stats.BytesFreed,
				},
			})
			log.Info().
				Str("kind", operation.Kind).
				Str("run_id", runID).
				Str("state", state.String()).
				Int("deleted", stats.Deleted).
				Int("failed", stats.Failed).
				Int64("bytes_freed", stats.BytesFreed).
				Msg("headless run finished")

			if cancelled {
				return withExitCode(exitcode.Interrupted, fmt.Errorf("%s was interrupted", operation.Kind))
			}
			if state != op.StateCompleted {
				return withExitCode(exitcode.OperationFailed, fmt.Errorf("%s finished with errors", operation.Kind))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Override per-command timeout (e.g. 10m, 1h)")
	return cmd
}

func finishedLevel(state op.State) output.Level {
	if state == op.StateCompleted {
		return output.LevelInfo
	}
	return output.LevelError
}
