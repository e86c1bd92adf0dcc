package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"aptilab/internal/adapter/quizgen"
	"aptilab/internal/config"
	"aptilab/internal/database"
	"aptilab/internal/domain"
	"aptilab/internal/logger"
	"aptilab/internal/repository"
	"aptilab/internal/service"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	topics := pflag.StringSliceP("topics", "t", domain.Topics, "topics to extend")
	perTopic := pflag.IntP("count", "n", 10, "questions to generate per topic")
	timeout := pflag.Duration("timeout", 10*time.Minute, "budget for the whole batch")
	pflag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Batch process starting up...", zap.Strings("topics", *topics), zap.Int("per_topic", *perTopic))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := database.NewSQLXMySQLDB(cfg.GetDSN(), cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	llm, err := quizgen.NewLLM(ctx, cfg.LLM)
	if err != nil {
		log.Fatal("Failed to create LLM client", zap.Error(err))
	}
	generator, err := quizgen.NewFailoverGenerator(llm, quizgen.Options{
		Models:         quizgen.CandidateModels(cfg.LLM),
		AttemptTimeout: cfg.LLM.AttemptTimeout,
	})
	if err != nil {
		log.Fatal("Failed to initialize question generator", zap.Error(err))
	}

	batch := service.NewBatchService(generator, repository.NewQuestionDatabaseAdapter(db), repository.NewTransactionManagerAdapter(db), log)
	report, err := batch.GenerateNewQuestionsAndSave(ctx, *topics, *perTopic)
	if err != nil {
		log.Fatal("Batch failed", zap.Error(err))
	}
	log.Info("Batch process finished", zap.Any("saved", report.Saved), zap.Strings("failed", report.Failed))
}
