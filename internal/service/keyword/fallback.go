package keyword

import "go.uber.org/zap"

// Fallback runs the primary engine and transparently switches to the
// secondary one when the primary reports an error or panics.
type Fallback struct {
	primary   FallibleExtractor
	secondary Extractor
	logger    *zap.Logger
}

func NewFallback(primary FallibleExtractor, secondary Extractor, logger *zap.Logger) *Fallback {
	return &Fallback{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

func (f *Fallback) Name() string {
	return f.primary.Name()
}

func (f *Fallback) Extract(text string) []string {
	tags, err := f.tryPrimary(text)
	if err == nil {
		return tags
	}

	f.logger.Warn("Primary keyword engine failed, using fallback",
		zap.String("primary", f.primary.Name()),
		zap.String("fallback", f.secondary.Name()),
		zap.Error(err),
	)
	return f.secondary.Extract(text)
}

func (f *Fallback) tryPrimary(text string) (tags []string, err error) {
	defer recoverAsError(&err)
	return f.primary.TryExtract(text)
}
