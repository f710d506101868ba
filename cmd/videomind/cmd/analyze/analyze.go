package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"videomind/internal/app"
	"videomind/internal/app/frames"
	"videomind/internal/app/model"
	"videomind/internal/app/storage"
	"videomind/internal/config"
)

// NewCommand returns the analyze subcommand, a one-shot run of the full
// pipeline from the terminal.
func NewCommand() *cobra.Command {
	var (
		visual  bool
		asJSON  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze a single video and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], visual, asJSON, timeout)
		},
	}

	cmd.Flags().BoolVar(&visual, "visual", false, "extract and describe key frames")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "abort processing after this long")
	return cmd
}

func run(url string, visual, asJSON bool, timeout time.Duration) error {
	cfg := config.Load()
	if err := cfg.ValidateAPIKeys(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	application, err := app.InitializeApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	opts := model.DefaultOptions()
	opts.VisualAnalysis = visual

	jobID, err := application.DAO.CreateJob(url, opts)
	if err != nil {
		return err
	}

	orchestrator := app.ProvideOrchestrator(
		cfg,
		application.DAO,
		app.ProvideDownloader(),
		app.ProvideTranscriber(),
		app.ProvideSummarizer(),
		mustCaptioner(ctx, cfg),
		mustFrameStore(ctx, cfg),
		application.Logger,
	)

	done := make(chan error, 1)
	go func() {
		done <- orchestrator.Process(ctx, jobID)
	}()

	if err := watchProgress(ctx, application, jobID, done); err != nil {
		return err
	}

	job, err := application.DAO.GetJob(jobID)
	if err != nil {
		return err
	}
	return printResult(job, asJSON)
}

// watchProgress renders a progress bar fed by the store until the
// pipeline goroutine finishes.
func watchProgress(ctx context.Context, application *app.Application, jobID string, done <-chan error) error {
	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(100,
		mpb.PrependDecorators(
			decor.Name("analyzing ", decor.WC{C: decor.DindentRight}),
			decor.Percentage(),
		),
		mpb.AppendDecorators(decor.Elapsed(decor.ET_STYLE_GO)),
	)

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			bar.Abort(true)
			p.Wait()
			return ctx.Err()
		case err := <-done:
			bar.SetCurrent(100)
			p.Wait()
			return err
		case <-ticker.C:
			if job, err := application.DAO.GetJob(jobID); err == nil {
				bar.SetCurrent(int64(job.Progress))
			}
		}
	}
}

func printResult(job *model.Job, asJSON bool) error {
	if job.Status == model.JobStatusFailed {
		return fmt.Errorf("analysis failed: %s", job.ErrorMessage)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"job_id":          job.ID,
			"title":           job.VideoTitle,
			"duration":        job.VideoDuration,
			"source":          job.VideoSource,
			"transcript":      job.TranscriptText,
			"summary_short":   job.SummaryShort,
			"summary":         job.SummaryDetailed,
			"chapters":        job.Chapters,
			"subtitles_srt":   job.SubtitlesSRT,
			"visual_analysis": job.VisualAnalysis,
		})
	}

	fmt.Printf("Title:    %s\n", job.VideoTitle)
	fmt.Printf("Duration: %s\n", job.VideoDuration)
	fmt.Printf("Source:   %s\n\n", job.VideoSource)
	fmt.Printf("Summary:\n%s\n", job.SummaryDetailed)
	if len(job.Chapters) > 0 {
		fmt.Println("\nChapters:")
		for _, ch := range job.Chapters {
			fmt.Printf("  %s - %s  %s\n", ch.Start, ch.End, ch.Title)
		}
	}
	if len(job.VisualAnalysis) > 0 {
		fmt.Println("\nKey frames:")
		for _, obs := range job.VisualAnalysis {
			fmt.Printf("  [%6.1fs] %s\n", obs.Timestamp, obs.Description)
		}
	}
	return nil
}

func mustCaptioner(ctx context.Context, cfg *config.Config) frames.Captioner {
	captioner, err := app.ProvideCaptioner(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "captioner init failed: %v\n", err)
		os.Exit(1)
	}
	return captioner
}

func mustFrameStore(ctx context.Context, cfg *config.Config) storage.FrameStore {
	store, err := app.ProvideFrameStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "frame store init failed: %v\n", err)
		os.Exit(1)
	}
	return store
}
