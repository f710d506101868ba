package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"videomind/internal/app/errors"
	"videomind/internal/app/model"
	"videomind/internal/app/repository"
)

// JobDB is the sqlite-backed job store.
type JobDB struct {
	db *sql.DB
}

// NewJobDB opens (and initializes) the database at dbFilePath.
func NewJobDB(dbFilePath string) (*JobDB, error) {
	db, err := OpenDB(dbFilePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseConnection.Error())
	}
	return &JobDB{db: db}, nil
}

func (j *JobDB) Close() error {
	return j.db.Close()
}

func newJobID() string {
	return "job_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

func (j *JobDB) CreateJob(url string, options model.Options) (string, error) {
	jobID := newJobID()

	opts, err := json.Marshal(options)
	if err != nil {
		return "", errors.Wrap(err, "marshal options failed")
	}

	insertSQL := `INSERT INTO jobs (id, url, options) VALUES (?, ?, ?)`
	if _, err := j.db.Exec(insertSQL, jobID, url, string(opts)); err != nil {
		return "", errors.Wrap(err, errors.ErrInsertFailed.Error())
	}
	return jobID, nil
}

const jobColumns = `id, url, options, status, progress, step,
	video_title, video_duration, video_source,
	transcript_text, transcript_segments,
	summary_short, summary_detailed, chapters, subtitles_srt, visual_analysis,
	error_message, created_at, completed_at`

func (j *JobDB) GetJob(jobID string) (*model.Job, error) {
	row := j.db.QueryRow(`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, jobID)
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
		`UPDATE jobs SET status = ?, progress = ?, step = ? WHERE id = ?`,
		model.JobStatusProcessing, progress, step, jobID)
}

func (j *JobDB) SetCheckpoint(jobID string, progress int, step string) error {
	return j.exec(
		`UPDATE jobs SET progress = ?, step = ? WHERE id = ?`,
		progress, step, jobID)
}

func (j *JobDB) SetVideoInfo(jobID string, info model.VideoInfo, progress int, step string) error {
	return j.exec(
		`UPDATE jobs SET progress = ?, step = ?, video_title = ?, video_duration = ?, video_source = ? WHERE id = ?`,
		progress, step, info.Title, strconv.Itoa(info.Duration), info.Source, jobID)
}

func (j *JobDB) SetTranscript(jobID string, transcript model.Transcript, progress int, step string) error {
	segments, err := json.Marshal(transcript.Segments)
	if err != nil {
		return errors.Wrap(err, "marshal segments failed")
	}
	return j.exec(
		`UPDATE jobs SET progress = ?, step = ?, transcript_text = ?, transcript_segments = ? WHERE id = ?`,
		progress, step, transcript.FullText, string(segments), jobID)
}

func (j *JobDB) Complete(jobID string, artifacts repository.CompletionArtifacts) error {
	chapters, err := json.Marshal(orEmptyChapters(artifacts.Chapters))
	if err != nil {
		return errors.Wrap(err, "marshal chapters failed")
	}
	visual, err := json.Marshal(orEmptyVisual(artifacts.VisualAnalysis))
	if err != nil {
		return errors.Wrap(err, "marshal visual analysis failed")
	}
	return j.exec(
		`UPDATE jobs SET status = ?, progress = 100, step = 'Done',
			summary_short = ?, summary_detailed = ?, chapters = ?,
			subtitles_srt = ?, visual_analysis = ?,
			completed_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		model.JobStatusCompleted,
		artifacts.SummaryShort, artifacts.SummaryDetailed, string(chapters),
		artifacts.SubtitlesSRT, string(visual), jobID)
}

func (j *JobDB) Fail(jobID string, message string) error {
	return j.exec(
		`UPDATE jobs SET status = ?, step = 'Error', error_message = ?, completed_at = CURRENT_TIMESTAMP WHERE id = ?`,
		model.JobStatusFailed, message, jobID)
}

func (j *JobDB) FindStale(createdBefore time.Time) ([]model.Job, error) {
	return j.queryJobs(
		`SELECT `+jobColumns+` FROM jobs WHERE status = ? AND created_at < ? ORDER BY created_at`,
		model.JobStatusProcessing, createdBefore.UTC())
}

func (j *JobDB) ListCompleted(limit int) ([]model.Job, error) {
	return j.queryJobs(
		`SELECT `+jobColumns+` FROM jobs WHERE status = ? ORDER BY completed_at DESC LIMIT ?`,
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

func orEmptyChapters(chapters []model.Chapter) []model.Chapter {
	if chapters == nil {
		return []model.Chapter{}
	}
	return chapters
}

func orEmptyVisual(visual []model.VisualObservation) []model.VisualObservation {
	if visual == nil {
		return []model.VisualObservation{}
	}
	return visual
}
