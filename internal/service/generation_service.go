package service

import (
	"context"
	"fmt"
	"fusion_backend/internal/model"
	"fusion_backend/internal/util"
	"fusion_backend/pkg/logger"
	"fusion_backend/pkg/monitoring"
	"fusion_backend/pkg/tracing"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type RosterProvider interface {
	Roster(ctx context.Context) ([]model.Entity, error)
	Themes() []string
	SplashURL(entity model.Entity) string
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

type PromptRefiner interface {
	Refine(ctx context.Context, prompt string, images ...ReferenceImage) string
}

type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, seed int) (*GeneratedImage, error)
}

type PuzzlePublisher interface {
	Publish(ctx context.Context, image *GeneratedImage, date string, a, b model.Entity, theme string) (*model.Puzzle, error)
}

// GenerationService 每日谜题生成流水线，严格顺序执行，不加锁
type GenerationService struct {
	roster    RosterProvider
	refiner   PromptRefiner
	images    ImageGenerator
	publisher PuzzlePublisher

	now     func() time.Time
	newRand func() *rand.Rand
}

func NewGenerationService(roster RosterProvider, refiner PromptRefiner, images ImageGenerator, publisher PuzzlePublisher) *GenerationService {
	return &GenerationService{
		roster:    roster,
		refiner:   refiner,
		images:    images,
		publisher: publisher,
		now:       time.Now,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

func (s *GenerationService) Generate(ctx context.Context) (*model.Puzzle, error) {
	runID := uuid.New().String()
	log := logger.Log.With(zap.String("run_id", runID))
	start := time.Now()

	ctx, span := tracing.Tracer.Start(ctx, "generation.run")
	defer span.End()
	span.SetAttributes(attribute.String("run_id", runID))

	puzzle, err := s.run(ctx, log)

	monitoring.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		monitoring.GenerationRuns.WithLabelValues("failure").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("Puzzle generation failed", zap.Error(err))
		return nil, err
	}

	monitoring.GenerationRuns.WithLabelValues("success").Inc()
	log.Info("Puzzle published",
		zap.String("date", puzzle.Date),
		zap.String("image_url", puzzle.ImageURL),
		zap.Duration("elapsed", time.Since(start)),
	)
	return puzzle, nil
}

func (s *GenerationService) run(ctx context.Context, log *zap.Logger) (*model.Puzzle, error) {
	rng := s.newRand()
	date := util.PuzzleDate(s.now())

	stageCtx, span := tracing.Tracer.Start(ctx, "generation.roster")
	roster, err := s.roster.Roster(stageCtx)
	span.End()
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	a, b, theme, err := SelectPair(rng, roster, s.roster.Themes())
	if err != nil {
		return nil, err
	}
	log.Info("Generating fusion",
		zap.String("entity_a", a.Name),
		zap.String("entity_b", b.Name),
		zap.String("theme", theme),
	)

	references, err := s.fetchReferences(ctx, a, b)
	if err != nil {
		return nil, err
	}

	prompt := ComposeFusionPrompt(a.Name, b.Name, theme)

	stageCtx, span = tracing.Tracer.Start(ctx, "generation.refine")
	refined := s.refiner.Refine(stageCtx, prompt, references...)
	span.End()

	seed := RandomSeed(rng)
	stageCtx, span = tracing.Tracer.Start(ctx, "generation.synthesize")
	span.SetAttributes(attribute.Int("seed", seed))
	image, err := s.images.Generate(stageCtx, refined, seed)
	span.End()
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	log.Info("Image generated", zap.Int("bytes", len(image.Data)), zap.Int("seed", seed))

	stageCtx, span = tracing.Tracer.Start(ctx, "generation.publish")
	defer span.End()
	return s.publisher.Publish(stageCtx, image, date, a, b, theme)
}

func (s *GenerationService) fetchReferences(ctx context.Context, entities ...model.Entity) ([]ReferenceImage, error) {
	ctx, span := tracing.Tracer.Start(ctx, "generation.reference_images")
	defer span.End()

	references := make([]ReferenceImage, 0, len(entities))
	for _, entity := range entities {
		data, err := s.roster.FetchImage(ctx, s.roster.SplashURL(entity))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch reference image for %s: %w", entity.ID, err)
		}
		references = append(references, ReferenceImage{Data: data, MIMEType: util.MimeJPEG})
	}
	return references, nil
}
