package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "hiring-platform-backend/models/db"
)

type Provider interface {
	ExportJobList(list []dbmodels.Job) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var jobHeaders = []string{"Title", "Status", "Department", "Location", "Employment type", "Priority", "Published", "Views", "Applications", "Created"}

const dateLayout = "2006-01-02"

func (i impl) ExportJobList(list []dbmodels.Job) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, jobHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		if err = writeJobData(f, sheet, list, row); err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx rows")
		}
	}
	f.SetSheetName(sheet, "Jobs")
	return f.WriteToBuffer()
}

func writeJobData(f *excelize.File, sheet string, list []dbmodels.Job, row int) error {
	for _, item := range list {
		row++
		published := ""
		if item.PublishedAt != nil {
			published = item.PublishedAt.Format(dateLayout)
		}
		values := []interface{}{
			item.Title,
			item.Status.ToHuman(),
			item.Department,
			item.Location,
			string(item.EmploymentType),
			string(item.Priority),
			published,
			item.ViewsCount,
			item.ApplicationsCount,
			item.CreatedAt.Format(dateLayout),
		}
		for col, value := range values {
			if err := writeColumn(f, sheet, col+1, row, value); err != nil {
				return err
			}
		}
	}
	return nil
}
