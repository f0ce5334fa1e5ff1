package pdfexport

import (
	"bytes"
	"fmt"
	"time"

	campaignapimodels "iga-backend/models/api/campaign"
	reviewapimodels "iga-backend/models/api/review"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

type column struct {
	title string
	width float64
	value func(item reviewapimodels.ReviewItemView) string
}

var columns = []column{
	{"Asset", 40, func(item reviewapimodels.ReviewItemView) string { return item.AssetName }},
	{"Okta group", 45, func(item reviewapimodels.ReviewItemView) string { return item.OktaGroup }},
	{"Employee", 55, func(item reviewapimodels.ReviewItemView) string { return item.EmployeeEmail }},
	{"Reviewer", 55, func(item reviewapimodels.ReviewItemView) string { return item.ReviewerEmail }},
	{"Decision", 25, func(item reviewapimodels.ReviewItemView) string {
		if item.Decision == nil {
			return string(item.Status)
		}
		return string(*item.Decision)
	}},
	{"Decided at", 30, func(item reviewapimodels.ReviewItemView) string {
		if item.DecidedAt == nil {
			return ""
		}
		return item.DecidedAt.UTC().Format("2006-01-02")
	}},
}

// GenerateAttestation renders the campaign summary and every review item as a landscape report.
func GenerateAttestation(campaign campaignapimodels.CampaignView, list []reviewapimodels.ReviewItemView, generatedAt time.Time) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateAttestation panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Access review attestation: %s", campaign.Name), true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Access review attestation"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	summary := []string{
		fmt.Sprintf("Campaign: %s", campaign.Name),
		fmt.Sprintf("Period: %s to %s", campaign.StartDate, campaign.DueDate),
		fmt.Sprintf("Status: %s", campaign.Status),
		fmt.Sprintf("Items: %d total, %d pending, %d reviewed", campaign.TotalItems, campaign.PendingItems, campaign.TotalItems-campaign.PendingItems),
		fmt.Sprintf("Generated: %s", generatedAt.UTC().Format(time.RFC3339)),
	}
	for _, line := range summary {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	writeTableHeader(pdf)
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range list {
		if pdf.GetY() > 185 {
			pdf.AddPage()
			writeTableHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}
		for _, col := range columns {
			pdf.CellFormat(col.width, 6, tr(truncate(pdf, col.value(item), col.width)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(221, 235, 247)
	for _, col := range columns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// truncate shortens value with an ellipsis so it fits the cell width.
func truncate(pdf *fpdf.Fpdf, value string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(value) <= limit {
		return value
	}
	runes := []rune(value)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
