// Package pipeline turns a video URL and persona into a ProcessingResult.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kapu/ayovirals-go/internal/constants"
	"github.com/kapu/ayovirals-go/internal/domain"
	"github.com/kapu/ayovirals-go/internal/service/hook"
	"github.com/kapu/ayovirals-go/internal/service/keyword"
	"github.com/kapu/ayovirals-go/internal/service/media"
	"github.com/kapu/ayovirals-go/internal/service/platform"
	"github.com/kapu/ayovirals-go/internal/service/result"
	"github.com/kapu/ayovirals-go/internal/service/summary"
	"github.com/kapu/ayovirals-go/internal/util"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Stage names one step of a processing run.
type Stage string

const (
	StageDetectPlatform  Stage = "detect_platform"
	StageAcquireMedia    Stage = "acquire_media"
	StageTranscribe      Stage = "transcribe"
	StageBuildContent    Stage = "build_content"
	StageExtractKeywords Stage = "extract_keywords"
	StageGenerateHooks   Stage = "generate_hooks"
	StageGenerateSummary Stage = "generate_summary"
	StageAssemble        Stage = "assemble"
	StagePersist         Stage = "persist"
	StageDone            Stage = "done"
)

// Observer is notified as each stage starts. It is called on the processing
// goroutine and must not block for long.
type Observer func(stage Stage)

// MediaAcquirer downloads audio for a URL.
type MediaAcquirer interface {
	Acquire(ctx context.Context, url string) (*media.Acquisition, error)
}

// AudioTranscriber returns a transcript and whether it is real.
type AudioTranscriber interface {
	Transcribe(ctx context.Context, filePath string) (string, bool)
}

// MetadataEnricher returns extra descriptive text for a URL, or "".
type MetadataEnricher interface {
	Enrich(ctx context.Context, url string, platform domain.Platform) string
}

// Deps wires an Orchestrator. Acquirer, Transcriber, Enricher and Store may be
// nil; the matching stages are then skipped.
type Deps struct {
	Personas         *domain.PersonaCatalog
	Acquirer         MediaAcquirer
	Transcriber      AudioTranscriber
	Enricher         MetadataEnricher
	Keywords         keyword.Extractor
	Hooks            *hook.Generator
	Summaries        *summary.Generator
	Store            result.Store
	BatchConcurrency int
}

// Orchestrator runs the processing stages for one request at a time; it is
// safe for concurrent use.
type Orchestrator struct {
	deps   Deps
	newID  func() string
	now    func() time.Time
	logger *zap.Logger
}

func NewOrchestrator(deps Deps, logger *zap.Logger) *Orchestrator {
	if deps.BatchConcurrency <= 0 {
		deps.BatchConcurrency = 1
	}
	return &Orchestrator{
		deps:   deps,
		newID:  uuid.NewString,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// Process always returns a fully populated result.
func (o *Orchestrator) Process(ctx context.Context, req domain.ProcessingRequest) *domain.ProcessingResult {
	return o.ProcessWithObserver(ctx, req, nil)
}

// ProcessWithObserver is Process with stage notifications.
func (o *Orchestrator) ProcessWithObserver(ctx context.Context, req domain.ProcessingRequest, observe Observer) *domain.ProcessingResult {
	notify := func(s Stage) {
		if observe != nil {
			observe(s)
		}
	}

	notify(StageDetectPlatform)
	detected := platform.Detect(req.VideoURL)
	persona := o.deps.Personas.Get(req.Persona)

	content := o.buildContent(ctx, req.VideoURL, detected, persona, notify)

	notify(StageExtractKeywords)
	keywords := util.NewOrderedSet(len(persona.Hashtags) + constants.GenerationLimits.MaxContentKeywords)
	keywords.AddAll(persona.Hashtags)
	keywords.AddAll(o.deps.Keywords.Extract(content))

	notify(StageGenerateHooks)
	hooks := o.deps.Hooks.Generate(content, persona.ID)
	if ce := o.logger.Check(zap.DebugLevel, "Hooks generated"); ce != nil {
		ce.Write(
			zap.String("persona", persona.ID),
			zap.Strings("trigger_groups", o.deps.Hooks.MatchedGroups(content)),
			zap.Int("hooks", len(hooks)))
	}

	notify(StageGenerateSummary)
	text := o.deps.Summaries.Generate(content)

	notify(StageAssemble)
	res := &domain.ProcessingResult{
		ID:        o.newID(),
		Summary:   text,
		Hooks:     hooks,
		Keywords:  keywords.Items(),
		Platform:  detected,
		Persona:   persona.ID,
		CreatedAt: o.now(),
	}

	if o.deps.Store != nil {
		notify(StagePersist)
		o.persist(ctx, req.VideoURL, res)
	}

	notify(StageDone)
	o.logger.Info("Video processed",
		zap.String("id", res.ID),
		zap.String("platform", string(res.Platform)),
		zap.String("persona", res.Persona),
		zap.Int("hooks", len(res.Hooks)),
		zap.Int("keywords", len(res.Keywords)))

	return res
}

// ProcessBatch runs independent requests on a bounded pool. Results keep the
// input order.
func (o *Orchestrator) ProcessBatch(ctx context.Context, reqs []domain.ProcessingRequest) []*domain.ProcessingResult {
	results := make([]*domain.ProcessingResult, len(reqs))
	resultsMu := sync.Mutex{}

	p := pool.New().WithMaxGoroutines(o.deps.BatchConcurrency)
	for idx, req := range reqs {
		idx, req := idx, req
		p.Go(func() {
			res := o.Process(ctx, req)
			resultsMu.Lock()
			results[idx] = res
			resultsMu.Unlock()
		})
	}
	p.Wait()

	return results
}

func (o *Orchestrator) buildContent(ctx context.Context, url string, detected domain.Platform, persona *domain.Persona, notify func(Stage)) string {
	var acq *media.Acquisition
	if o.deps.Acquirer != nil {
		notify(StageAcquireMedia)
		var err error
		acq, err = o.deps.Acquirer.Acquire(ctx, url)
		if err != nil {
			o.logger.Warn("Media acquisition failed, using placeholder content",
				zap.String("url", url),
				zap.Error(err))
			acq = nil
		}
	}
	if acq != nil {
		defer acq.Cleanup()
	}

	transcript, transcribed := "", false
	if acq != nil && o.deps.Transcriber != nil {
		notify(StageTranscribe)
		transcript, transcribed = o.deps.Transcriber.Transcribe(ctx, acq.AudioPath)
	}

	notify(StageBuildContent)
	if transcribed {
		return joinContent(acq.Text(), transcript)
	}

	content := placeholderContent(detected, persona)
	if acq != nil {
		return joinContent(content, acq.Text())
	}
	if o.deps.Enricher != nil {
		return joinContent(content, o.deps.Enricher.Enrich(ctx, url, detected))
	}
	return content
}

func (o *Orchestrator) persist(ctx context.Context, url string, res *domain.ProcessingResult) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.RequestLimits.PersistTimeout)
	defer cancel()

	if err := o.deps.Store.Save(pctx, domain.NewVideoRecord(url, res)); err != nil {
		o.logger.Error("Failed to persist result",
			zap.String("id", res.ID),
			zap.String("store", o.deps.Store.Name()),
			zap.Error(err))
	}
}

func placeholderContent(p domain.Platform, persona *domain.Persona) string {
	return fmt.Sprintf("Video analysis for %s content with the %s persona. "+
		"The media could not be processed, so hooks and keywords follow platform and persona patterns.",
		p, persona.Name)
}

func joinContent(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, strings.TrimRight(p, "."))
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, ". ") + "."
}
