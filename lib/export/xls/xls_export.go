package xlsexport

import (
	"bytes"
	"fmt"

	"iga-backend/lib/utils/helpers"
	campaignapimodels "iga-backend/models/api/campaign"
	reviewapimodels "iga-backend/models/api/review"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportCampaignItems(campaign campaignapimodels.CampaignView, list []reviewapimodels.ReviewItemView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	summarySheet = "Summary"
	itemsSheet   = "Review items"
)

var itemHeaders = []string{"Asset", "Login type", "Okta group", "Privileged", "Employee", "Reviewer", "Status", "Decision", "Evidence", "Decided by", "Decided at"}

func (i impl) ExportCampaignItems(campaign campaignapimodels.CampaignView, list []reviewapimodels.ReviewItemView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("xlsx file close failed")
		}
	}()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, errors.Wrap(err, "xlsx summary sheet")
	}
	if err := writeSummary(f, campaign); err != nil {
		return nil, errors.Wrap(err, "xlsx summary")
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, errors.Wrap(err, "xlsx items sheet")
	}
	row, err := writeHeader(f, itemsSheet, 0, itemHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx header")
	}
	if err = writeItems(f, itemsSheet, list, row); err != nil {
		return nil, errors.Wrap(err, "xlsx review items")
	}
	if err = f.SetPanes(itemsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, errors.Wrap(err, "xlsx panes")
	}
	return f.WriteToBuffer()
}

func writeSummary(f *excelize.File, campaign campaignapimodels.CampaignView) error {
	rows := [][]interface{}{
		{"Campaign", campaign.Name},
		{"Status", string(campaign.Status)},
		{"Scope", string(campaign.Scope)},
		{"Start date", campaign.StartDate},
		{"Due date", campaign.DueDate},
		{"Created by", campaign.CreatedBy},
		{"Total items", campaign.TotalItems},
		{"Pending items", campaign.PendingItems},
		{"Reviewed items", campaign.TotalItems - campaign.PendingItems},
	}
	if err := f.SetColWidth(summarySheet, "A", "B", columnWidth); err != nil {
		return err
	}
	for idx, values := range rows {
		for col, value := range values {
			if err := writeCell(f, summarySheet, col+1, idx+1, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeItems(f *excelize.File, sheet string, list []reviewapimodels.ReviewItemView, row int) error {
	if err := applyDataStyle(f, sheet, 1, row+1, len(itemHeaders), row+len(list)); err != nil {
		return err
	}
	for _, item := range list {
		row++
		decision := ""
		if item.Decision != nil {
			decision = string(*item.Decision)
		}
		privileged := "No"
		if item.Privileged {
			privileged = "Yes"
		}
		decidedAt := ""
		if item.DecidedAt != nil {
			decidedAt = item.DecidedAt.UTC().Format("2006-01-02 15:04")
		}
		values := []interface{}{
			item.AssetName,
			string(item.LoginType),
			item.OktaGroup,
			privileged,
			item.EmployeeEmail,
			item.ReviewerEmail,
			string(item.Status),
			decision,
			item.EvidenceNotes,
			helpers.PtrValue(item.DecidedBy),
			decidedAt,
		}
		for idx, value := range values {
			if err := writeCell(f, sheet, idx+1, row, value); err != nil {
				return err
			}
		}
	}
	if len(list) == 0 {
		return nil
	}
	lastCol, err := excelize.ColumnNumberToName(len(itemHeaders))
	if err != nil {
		return err
	}
	return f.AutoFilter(sheet, fmt.Sprintf("A1:%s%d", lastCol, row), nil)
}
