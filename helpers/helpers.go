package helpers

import (
	// Go Internal Packages
	"encoding/json"
	"fmt"
	"io"

	// Local Packages
	models "tx-risk/models"
	utils "tx-risk/utils"
)

// PrintStruct writes v as indented JSON followed by a newline.
func PrintStruct(w io.Writer, v any) error {
	res, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(res))
	return err
}

// PrintReport prints the console view of a report: the overall verdict, the batch level
// risk factors and the ranked high risk users.
func PrintReport(w io.Writer, report *models.Report, summary models.Summary) error {
	p := &printer{w: w}

	p.printf("=== FRAUD DETECTION RESULTS ===\n")
	p.printf("Overall Risk Level: %s\n", report.Overall.RiskLevel)
	p.printf("Overall Fraud Score: %.1f/100\n", report.Overall.FraudScore)

	if len(report.Overall.Reasons) > 0 {
		p.printf("\nOverall Risk Factors:\n")
		for _, rule := range utils.SortedKeys(report.Overall.Reasons) {
			p.printf("  - %s\n", report.Overall.Reasons[rule])
		}
	}

	p.printf("\nAnalyzed %d users:\n", summary.TotalUsers)
	d := summary.Distribution
	p.printf("  HIGH=%d MEDIUM=%d LOW=%d MINIMAL=%d\n", d.High, d.Medium, d.Low, d.Minimal)

	if len(summary.HighRiskUsers) > 0 {
		p.printf("\nHigh-Risk Users:\n")
		for _, u := range summary.HighRiskUsers {
			p.printf("  User %s: %.1f/100 (%s)\n", u.UserID, u.FraudScore, u.RiskLevel)
			for _, rule := range utils.SortedKeys(u.Reasons) {
				p.printf("    - %s\n", u.Reasons[rule])
			}
		}
	}
	return p.err
}

// printer keeps the first write error so PrintReport can check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
