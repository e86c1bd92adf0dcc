package service

import (
	"context"

	"aptilab/internal/config"
	"aptilab/internal/domain"
	"aptilab/internal/logger"

	"go.uber.org/zap"
)

// ReportService mails the latest result of a user on request.
type ReportService interface {
	SendLatestReport(ctx context.Context, email string) error
}

type reportServiceImpl struct {
	results domain.ResultRepository
	mailer  domain.Mailer
	smtp    config.SMTPConfig
}

func NewReportService(results domain.ResultRepository, mailer domain.Mailer, smtp config.SMTPConfig) ReportService {
	return &reportServiceImpl{results: results, mailer: mailer, smtp: smtp}
}

// SendLatestReport checks, in order: an email was given, SMTP is configured,
// a result exists. Nothing is sent unless all three hold.
func (s *reportServiceImpl) SendLatestReport(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.NewInvalidInputError("Email is required")
	}
	if missing := s.smtp.Missing(); len(missing) > 0 || s.mailer == nil {
		return domain.NewMailConfigError(missing)
	}

	latest, err := s.results.LatestByEmail(ctx, email)
	if err != nil {
		return domain.NewStorageError("latest_result", err)
	}
	if latest == nil {
		return domain.NewResultNotFoundError(email)
	}

	body, err := RenderReport(latest, "AptiLab Test Report", "Here are your latest test results:")
	if err != nil {
		return domain.NewInternalError("Failed to render report", err)
	}
	if err := s.mailer.Send(ctx, email, ReportSubject(latest), body); err != nil {
		logger.Get().Error("Failed to send report email", zap.String("email", email), zap.Error(err))
		return domain.NewMailSendError(err)
	}

	logger.Get().Info("Report email sent", zap.String("email", email), zap.Int64("result_id", latest.ID))
	return nil
}
