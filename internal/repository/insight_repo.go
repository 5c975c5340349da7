package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-quant/config"
	"golang-quant/internal/dto"
	"golang-quant/pkg/logger"
	"golang-quant/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// InsightRepository turns a completed backtest summary into a short natural
// language commentary.
type InsightRepository interface {
	SummarizeBacktest(ctx context.Context, summary *dto.BacktestSummary) (string, error)
}

type geminiInsightRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	genAiClient    *genai.Client
	requestLimiter *rate.Limiter
	tokenLimiter   *ratelimit.TokenLimiter
}

// NewGeminiInsightRepository creates a new instance of geminiInsightRepository.
func NewGeminiInsightRepository(cfg *config.Config, log *logger.Logger) (InsightRepository, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiInsightRepository{
		cfg:            cfg,
		logger:         log,
		genAiClient:    genAiClient,
		requestLimiter: requestLimiter,
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
	}, nil
}

func (r *geminiInsightRepository) SummarizeBacktest(ctx context.Context, summary *dto.BacktestSummary) (string, error) {
	if summary == nil || summary.Completed == 0 {
		return "", fmt.Errorf("no completed epochs to summarize")
	}

	prompt := r.promptBacktestSummary(summary)

	// Rough token estimate: one token per 4 characters of prompt.
	if err := r.tokenLimiter.Wait(ctx, len(prompt)/4+1); err != nil {
		return "", err
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, genai.Text(prompt), nil)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to generate backtest insight", logger.ErrorField(err))
		return "", fmt.Errorf("failed to generate backtest insight: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty insight response")
	}
	return text, nil
}

func (r *geminiInsightRepository) promptBacktestSummary(summary *dto.BacktestSummary) string {
	sb := strings.Builder{}
	sb.WriteString("You are a quantitative analyst. Summarize this strategy backtest in at most 4 sentences, ")
	sb.WriteString("plain language, no financial advice.\n\n")
	sb.WriteString(fmt.Sprintf("Strategy: %s\n", summary.Strategy))
	sb.WriteString(fmt.Sprintf("Epochs: %d completed, %d skipped\n", summary.Completed, summary.Skipped))
	if summary.MeanCAGR != nil {
		sb.WriteString(fmt.Sprintf("Mean CAGR: %.2f%%\n", *summary.MeanCAGR))
	}
	if summary.StdCAGR != nil {
		sb.WriteString(fmt.Sprintf("CAGR std dev: %.2f%%\n", *summary.StdCAGR))
	}
	sb.WriteString(fmt.Sprintf("Mean trades per epoch: %.2f\n", summary.MeanTrades))
	sb.WriteString(fmt.Sprintf("Epochs with zero trades: %d\n", summary.ZeroTradeEpochs))
	return sb.String()
}
