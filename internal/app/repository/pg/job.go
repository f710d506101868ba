package pg

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"videomind/internal/app/errors"
	"videomind/internal/app/model"
	"videomind/internal/app/repository"
)

// JobDB is the Postgres-backed job store. The schema mirrors the sqlite
// store; only placeholders and timestamp functions differ.
type JobDB struct {
	db *sql.DB
}

// NewJobDB opens a connection with the given DSN and initializes the schema.
func NewJobDB(dsn string) (*JobDB, error) {
	db, err := OpenDB(dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseConnection.Error())
	}
	return &JobDB{db: db}, nil
}

// NewJobDBWithConn wraps an existing connection, used by unit tests.
func NewJobDBWithConn(db *sql.DB) *JobDB {
	return &JobDB{db: db}
}

func (j *JobDB) Close() error {
	return j.db.Close()
}

const jobColumns = `id, url, options, status, progress, step,
	video_title, video_duration, video_source,
	transcript_text, transcript_segments,
	summary_short, summary_detailed, chapters, subtitles_srt, visual_analysis,
	error_message, created_at, completed_at`

func (j *JobDB) CreateJob(url string, options model.Options) (string, error) {
	jobID := "job_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]

	opts, err := json.Marshal(options)
	if err != nil {
		return "", errors.Wrap(err, "marshal options failed")
	}

	if _, err := j.db.Exec(`INSERT INTO jobs (id, url, options) VALUES ($1, $2, $3)`,
		jobID, url, string(opts)); err != nil {
		return "", errors.Wrap(err, errors.ErrInsertFailed.Error())
	}
	return jobID, nil
}

func (j *JobDB) GetJob(jobID string) (*model.Job, error) {
	row := j.db.QueryRow(`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID)
	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrJobNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrQueryFailed.Error())
	}
	return job, nil
}

func (j *JobDB) MarkProcessing(jobID string, progress int, step string) error {
	return j.exec(
		`UPDATE jobs SET status = $1, progress = $2, step = $3 WHERE id = $4`,
		model.JobStatusProcessing, progress, step, jobID)
}

func (j *JobDB) SetCheckpoint(jobID string, progress int, step string) error {
	return j.exec(
		`UPDATE jobs SET progress = $1, step = $2 WHERE id = $3`,
		progress, step, jobID)
}

func (j *JobDB) SetVideoInfo(jobID string, info model.VideoInfo, progress int, step string) error {
	return j.exec(
		`UPDATE jobs SET progress = $1, step = $2, video_title = $3, video_duration = $4, video_source = $5 WHERE id = $6`,
		progress, step, info.Title, strconv.Itoa(info.Duration), info.Source, jobID)
}

func (j *JobDB) SetTranscript(jobID string, transcript model.Transcript, progress int, step string) error {
	segments, err := json.Marshal(transcript.Segments)
	if err != nil {
		return errors.Wrap(err, "marshal segments failed")
	}
	return j.exec(
		`UPDATE jobs SET progress = $1, step = $2, transcript_text = $3, transcript_segments = $4 WHERE id = $5`,
		progress, step, transcript.FullText, string(segments), jobID)
}

func (j *JobDB) Complete(jobID string, artifacts repository.CompletionArtifacts) error {
	chapters := artifacts.Chapters
	if chapters == nil {
		chapters = []model.Chapter{}
	}
	visual := artifacts.VisualAnalysis
	if visual == nil {
		visual = []model.VisualObservation{}
	}

	chaptersJSON, err := json.Marshal(chapters)
	if err != nil {
		return errors.Wrap(err, "marshal chapters failed")
	}
	visualJSON, err := json.Marshal(visual)
	if err != nil {
		return errors.Wrap(err, "marshal visual analysis failed")
	}
	return j.exec(
		`UPDATE jobs SET status = $1, progress = 100, step = 'Done',
			summary_short = $2, summary_detailed = $3, chapters = $4,
			subtitles_srt = $5, visual_analysis = $6,
			completed_at = NOW()
		 WHERE id = $7`,
		model.JobStatusCompleted,
		artifacts.SummaryShort, artifacts.SummaryDetailed, string(chaptersJSON),
		artifacts.SubtitlesSRT, string(visualJSON), jobID)
}

func (j *JobDB) Fail(jobID string, message string) error {
	return j.exec(
		`UPDATE jobs SET status = $1, step = 'Error', error_message = $2, completed_at = NOW() WHERE id = $3`,
		model.JobStatusFailed, message, jobID)
}

func (j *JobDB) FindStale(createdBefore time.Time) ([]model.Job, error) {
	return j.queryJobs(
		`SELECT `+jobColumns+` FROM jobs WHERE status = $1 AND created_at < $2 ORDER BY created_at`,
		model.JobStatusProcessing, createdBefore.UTC())
}

func (j *JobDB) ListCompleted(limit int) ([]model.Job, error) {
	return j.queryJobs(
		`SELECT `+jobColumns+` FROM jobs WHERE status = $1 ORDER BY completed_at DESC LIMIT $2`,
		model.JobStatusCompleted, limit)
}

func (j *JobDB) exec(query string, args ...interface{}) error {
	if _, err := j.db.Exec(query, args...); err != nil {
		return errors.Wrap(err, errors.ErrUpdateFailed.Error())
	}
	return nil
}

func (j *JobDB) queryJobs(query string, args ...interface{}) ([]model.Job, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrQueryFailed.Error())
	}
	defer rows.Close()

	jobs := make([]model.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %v", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*model.Job, error) {
	var (
		job         model.Job
		options     string
		segments    string
		chapters    string
		visual      string
		completedAt sql.NullTime
	)

	err := row.Scan(
		&job.ID, &job.URL, &options, &job.Status, &job.Progress, &job.Step,
		&job.VideoTitle, &job.VideoDuration, &job.VideoSource,
		&job.TranscriptText, &segments,
		&job.SummaryShort, &job.SummaryDetailed, &chapters, &job.SubtitlesSRT, &visual,
		&job.ErrorMessage, &job.CreatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(options), &job.Options); err != nil {
		return nil, fmt.Errorf("decode options: %v", err)
	}
	if err := json.Unmarshal([]byte(segments), &job.TranscriptSegments); err != nil {
		return nil, fmt.Errorf("decode segments: %v", err)
	}
	if err := json.Unmarshal([]byte(chapters), &job.Chapters); err != nil {
		return nil, fmt.Errorf("decode chapters: %v", err)
	}
	if err := json.Unmarshal([]byte(visual), &job.VisualAnalysis); err != nil {
		return nil, fmt.Errorf("decode visual analysis: %v", err)
	}
	if completedAt.Valid {
		t := completedAt.Time
		job.CompletedAt = &t
	}
	return &job, nil
}
