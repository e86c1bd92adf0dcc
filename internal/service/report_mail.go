package service

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"aptilab/internal/domain"
)

const defaultReportTopic = "General"

var reportTemplate = template.Must(template.New("report").Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #0f172a;">
  <h2 style="margin: 0 0 12px;">{{.Heading}}</h2>
  <p style="margin: 0 0 12px;">{{.Intro}}</p>
  <table style="border-collapse: collapse; width: 100%; max-width: 520px;">
    <tr><td style="padding: 8px; border: 1px solid #e2e8f0;">Topic</td><td style="padding: 8px; border: 1px solid #e2e8f0;">{{.Topic}}</td></tr>
    <tr><td style="padding: 8px; border: 1px solid #e2e8f0;">Score</td><td style="padding: 8px; border: 1px solid #e2e8f0;">{{.Score}}/{{.Total}}</td></tr>
    <tr><td style="padding: 8px; border: 1px solid #e2e8f0;">Percentage</td><td style="padding: 8px; border: 1px solid #e2e8f0;">{{.Percentage}}%</td></tr>
    <tr><td style="padding: 8px; border: 1px solid #e2e8f0;">Time Spent</td><td style="padding: 8px; border: 1px solid #e2e8f0;">{{.TimeSpent}} seconds</td></tr>
    <tr><td style="padding: 8px; border: 1px solid #e2e8f0;">Date</td><td style="padding: 8px; border: 1px solid #e2e8f0;">{{.Date}}</td></tr>
  </table>
  <p style="margin-top: 16px;">Keep practicing to improve your score!</p>
</div>
`))

type reportView struct {
	Heading    string
	Intro      string
	Topic      string
	Score      int
	Total      int
	Percentage int
	TimeSpent  int
	Date       string
}

func reportTopic(r *domain.TestResult) string {
	if r.Topic == "" {
		return defaultReportTopic
	}
	return r.Topic
}

// ReportSubject is the subject line of the latest-result report mail.
func ReportSubject(r *domain.TestResult) string {
	return fmt.Sprintf("AptiLab Test Report - %s", reportTopic(r))
}

// ResultSubject is the subject line of the mail sent right after a submission.
func ResultSubject(r *domain.TestResult) string {
	return fmt.Sprintf("AptiLab Test Result - %s", reportTopic(r))
}

// RenderReport renders r as the HTML report body.
func RenderReport(r *domain.TestResult, heading, intro string) (string, error) {
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	view := reportView{
		Heading:    heading,
		Intro:      intro,
		Topic:      reportTopic(r),
		Score:      r.Score,
		Total:      r.TotalQuestions,
		Percentage: int(r.Percentage + 0.5),
		TimeSpent:  r.TimeSpent,
		Date:       created.Format("2006-01-02 15:04:05"),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}
