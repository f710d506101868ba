package export

import (
	"time"

	"github.com/tealeg/xlsx"

	"videomind/internal/app/model"
)

// ToExcel writes completed jobs to an xlsx workbook at outputFilePath.
func ToExcel(jobs []model.Job, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Jobs")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range []string{"ID", "URL", "Status", "Title", "Duration", "Source", "Short Summary", "Created At", "Completed At"} {
		headerRow.AddCell().Value = h
	}

	for _, job := range jobs {
		row := sheet.AddRow()
		row.AddCell().Value = job.ID
		row.AddCell().Value = job.URL
		row.AddCell().Value = string(job.Status)
		row.AddCell().Value = job.VideoTitle
		row.AddCell().Value = job.VideoDuration
		row.AddCell().Value = job.VideoSource
		row.AddCell().Value = job.SummaryShort
		row.AddCell().Value = job.CreatedAt.Format(time.RFC3339)
		if job.CompletedAt != nil {
			row.AddCell().Value = job.CompletedAt.Format(time.RFC3339)
		} else {
			row.AddCell().Value = ""
		}
	}

	return file.Save(outputFilePath)
}
