package api

import (
	"context"
	"io"
	"time"

	"github.com/samcharles93/stdhep/internal/logger"
	"github.com/samcharles93/stdhep/pkg/stdhep"
)

// DecodeService decodes uploaded STDHEP streams. Each call uses its own
// stdhep.Reader.
type DecodeService struct {
	classifier stdhep.Classifier
	log        logger.Logger
	maxEvents  int
	clock      func() time.Time
}

type DecodeServiceConfig struct {
	Classifier stdhep.Classifier
	Logger     logger.Logger
	// MaxEvents caps kept events per upload when the request gives no limit.
	MaxEvents int
}

func NewDecodeService(cfg DecodeServiceConfig) *DecodeService {
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &DecodeService{
		classifier: cfg.Classifier,
		log:        log,
		maxEvents:  cfg.MaxEvents,
		clock:      time.Now,
	}
}

// Decode reads the whole stream. Header failures are returned as errors
// wrapping ErrInvalidSample; a fatal error after the header is reported on
// the result instead, together with everything decoded before it.
func (s *DecodeService) Decode(ctx context.Context, body io.Reader, size int64, params DecodeParams) (*SampleResult, error) {
	maxEvents := params.MaxEvents
	if maxEvents == 0 {
		maxEvents = s.maxEvents
	}
	id := newSampleID()
	log := s.log.With("sample", id)

	r, err := stdhep.NewReader(body, size, stdhep.Options{
		Logger:     log,
		Classifier: s.classifier,
		MaxEvents:  maxEvents,
	})
	if err != nil {
		return nil, invalidSampleError{err: err}
	}

	res := &SampleResult{
		ID:        id,
		Object:    "sample",
		CreatedAt: s.clock().Unix(),
		Size:      size,
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ev, st, err := r.ReadEvent()
		if st == stdhep.StatusFailure {
			if !stdhep.IsEndOfStream(err) {
				res.Error = &ResponseError{
					Message: err.Error(),
					Type:    "decode_error",
					Code:    stdhep.Classify(err).String(),
				}
			}
			break
		}
		if st == stdhep.StatusKeep && params.Events {
			res.Events = append(res.Events, ev)
		}
	}

	stats := r.Stats()
	res.Sample = r.Sample()
	res.Keep = stats.Keep
	res.Skip = stats.Skip
	res.Reasons = stats.Reasons
	log.Info("sample decoded", "keep", res.Keep, "skip", res.Skip, "generator", res.Sample.Generator)
	return res, nil
}
