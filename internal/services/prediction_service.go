package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flightontime/backend/internal/common"
	reqctx "flightontime/backend/internal/context"
	"flightontime/backend/internal/logging"
	"flightontime/backend/internal/metrics"
	"flightontime/backend/internal/models/dtos"
	"flightontime/backend/internal/models/entities"
	"flightontime/backend/internal/models/gorm"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// PredictionInput is one caller query
type PredictionInput struct {
	FlightDateUTC time.Time
	Carrier       string
	Origin        string
	Dest          string
	CallerID      string
}

type predictionState string

const (
	stateValidating        predictionState = "VALIDATING"
	stateResolvingAirports predictionState = "RESOLVING_AIRPORTS"
	stateDedupCheck        predictionState = "DEDUP_CHECK"
	stateCacheHit          predictionState = "CACHE_HIT"
	stateCallingModel      predictionState = "CALLING_MODEL"
	stateNormalizing       predictionState = "NORMALIZING"
	statePersisting        predictionState = "PERSISTING"
	stateDone              predictionState = "DONE"
)

// PredictionService orchestrates a delay prediction: airport resolution,
// distance, dedup against stored history, model call, normalization, persistence.
type PredictionService struct {
	airports Resolver
	store    PredictionStore
	model    ModelClient
	weather  WeatherClient
	metrics  *metrics.MetricsRegistry

	// identical in-process fingerprints share one model call
	inflight singleflight.Group

	// optional cross-instance lock around the miss path
	lock             common.FingerprintLock
	lockTTL          time.Duration
	lockPollInterval time.Duration

	// upper bound on one shared model flight, independent of the callers' contexts
	flightTimeout time.Duration
}

type PredictionServiceOption func(*PredictionService)

// WithWeather enables weather features; without it they stay zero
func WithWeather(weather WeatherClient) PredictionServiceOption {
	return func(s *PredictionService) {
		s.weather = weather
	}
}

// WithFingerprintLock guards the miss path across instances. A caller that
// loses the lock waits up to ttl for the holder's stored result.
func WithFingerprintLock(lock common.FingerprintLock, ttl time.Duration) PredictionServiceOption {
	return func(s *PredictionService) {
		s.lock = lock
		s.lockTTL = ttl
	}
}

// WithFlightTimeout bounds a shared miss-path run (weather, model call, save)
func WithFlightTimeout(d time.Duration) PredictionServiceOption {
	return func(s *PredictionService) {
		if d > 0 {
			s.flightTimeout = d
		}
	}
}

func WithPredictionMetrics(m *metrics.MetricsRegistry) PredictionServiceOption {
	return func(s *PredictionService) {
		s.metrics = m
	}
}

func NewPredictionService(airports Resolver, store PredictionStore, model ModelClient, opts ...PredictionServiceOption) *PredictionService {
	s := &PredictionService{
		airports:         airports,
		store:            store,
		model:            model,
		lockTTL:          30 * time.Second,
		lockPollInterval: 200 * time.Millisecond,
		flightTimeout:    30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict returns the prediction for the flight, from stored history when an
// identical fingerprint exists, otherwise from the model.
func (s *PredictionService) Predict(ctx context.Context, in PredictionInput) (*dtos.PredictionResult, error) {
	start := time.Now()
	log := logging.WithRequest(reqctx.RequestID(ctx), in.CallerID, "predict")
	defer func() {
		if s.metrics != nil {
			s.metrics.PredictionDuration.Observe(time.Since(start).Seconds())
		}
	}()

	log.Debugw("Prediction state", "state", stateValidating)
	if strings.EqualFold(strings.TrimSpace(in.Origin), strings.TrimSpace(in.Dest)) {
		return nil, fmt.Errorf("%w: origin and destination are both %q", ErrInvalidRoute, common.NormalizeCode(in.Origin))
	}

	log.Debugw("Prediction state", "state", stateResolvingAirports)
	origin, err := s.airports.Resolve(ctx, in.Origin)
	if err != nil {
		return nil, fmt.Errorf("resolve origin: %w", err)
	}
	dest, err := s.airports.Resolve(ctx, in.Dest)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w", err)
	}

	fp := entities.Fingerprint{
		FlightDateUTC: NormalizeFlightTime(in.FlightDateUTC),
		Carrier:       common.NormalizeCode(in.Carrier),
		Origin:        origin.IATA,
		Dest:          dest.IATA,
		DistanceKm:    common.Distance(origin.Latitude, origin.Longitude, dest.Latitude, dest.Longitude),
	}

	log.Debugw("Prediction state", "state", stateDedupCheck, "fingerprint", fp.Key())
	stored, err := s.findStored(ctx, fp)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		log.Infow("Prediction served from history", "state", stateCacheHit, "request_ref", stored.ID)
		s.recordPrediction(stored.Prediction, "stored")
		return toPredictionResult(stored, true), nil
	}

	// the flight outlives any one caller; each caller still honours its own ctx
	led := false
	flight := s.inflight.DoChan(fp.Key(), func() (interface{}, error) {
		led = true
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.flightTimeout)
		defer cancel()

		// a flight that finished after our dedup check has already stored its result
		stored, err := s.findStored(flightCtx, fp)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			s.recordPrediction(stored.Prediction, "stored")
			return toPredictionResult(stored, true), nil
		}
		return s.predictUncached(flightCtx, log, fp, origin, dest, in.CallerID)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("predict: %w", ctx.Err())
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		// joined callers must not share the leader's pointer
		result := *(res.Val.(*dtos.PredictionResult))
		if !led {
			result.Cached = true
		}
		return &result, nil
	}
}

func (s *PredictionService) predictUncached(
	ctx context.Context,
	log *zap.SugaredLogger,
	fp entities.Fingerprint,
	origin, dest *gorm.Airport,
	callerID string,
) (*dtos.PredictionResult, error) {
	if s.lock != nil {
		unlock, peer, err := s.acquireFingerprint(ctx, fp)
		if err != nil {
			return nil, err
		}
		if peer != nil {
			s.recordPrediction(peer.Prediction, "stored")
			return toPredictionResult(peer, true), nil
		}
		if unlock != nil {
			defer unlock()
		}
	}

	log.Debugw("Prediction state", "state", stateCallingModel)
	query := BuildModelQuery(fp,
		s.weatherFor(ctx, log, origin, fp.FlightDateUTC),
		s.weatherFor(ctx, log, dest, fp.FlightDateUTC),
	)

	callStart := time.Now()
	resp, err := s.model.Predict(ctx, query)
	s.observeExternal("model_service", callStart, err)
	if err != nil {
		return nil, fmt.Errorf("%w: model call: %w", ErrExternalAPI, err)
	}

	log.Debugw("Prediction state", "state", stateNormalizing, "raw_verdict", resp.Verdict, "raw_confidence", resp.Confidence)
	verdict, confidence := Normalize(resp.Verdict, resp.Confidence)

	req := &gorm.PredictionRequest{
		FlightDateUTC: fp.FlightDateUTC,
		CarrierCode:   fp.Carrier,
		OriginIATA:    fp.Origin,
		DestIATA:      fp.Dest,
		DistanceKm:    fp.DistanceKm,
		CreatedBy:     callerID,
		Prediction: &gorm.Prediction{
			Verdict:     verdict,
			Probability: clampProbability(resp.Probability),
			Confidence:  confidence,
		},
	}

	log.Debugw("Prediction state", "state", statePersisting)
	if err := s.store.SaveWithPrediction(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: save prediction: %w", ErrStorage, err)
	}

	log.Infow("Prediction computed",
		"state", stateDone,
		"request_ref", req.ID,
		"verdict", verdict,
		"confidence", confidence,
		"distance_km", fp.DistanceKm,
	)
	s.recordPrediction(req.Prediction, "model")
	return toPredictionResult(req, false), nil
}

func (s *PredictionService) findStored(ctx context.Context, fp entities.Fingerprint) (*gorm.PredictionRequest, error) {
	stored, err := s.store.FindByFingerprint(ctx, fp)
	if err != nil {
		return nil, fmt.Errorf("%w: dedup lookup: %w", ErrStorage, err)
	}
	return stored, nil
}

// acquireFingerprint takes the cross-instance lock for fp. It returns a peer's
// stored result when another instance finished first. Lock backend failures
// fall back to the unlocked path.
func (s *PredictionService) acquireFingerprint(ctx context.Context, fp entities.Fingerprint) (func(), *gorm.PredictionRequest, error) {
	unlock, ok, err := s.lock.TryLock(ctx, fp.Key(), s.lockTTL)
	if err != nil {
		logging.Warn("Fingerprint lock unavailable, continuing without it",
			"request_id", reqctx.RequestID(ctx),
			"error", err.Error(),
		)
		return nil, nil, nil
	}

	if ok {
		// a peer may have stored the result between our dedup check and the lock
		stored, err := s.findStored(ctx, fp)
		if err != nil {
			unlock()
			return nil, nil, err
		}
		if stored != nil {
			unlock()
			return nil, stored, nil
		}
		return unlock, nil, nil
	}

	unlock, stored, err := s.waitForPeer(ctx, fp)
	if err != nil {
		return nil, nil, err
	}
	if unlock == nil && stored == nil {
		logging.Warn("Fingerprint lock holder did not finish in time, calling model",
			"request_id", reqctx.RequestID(ctx),
			"fingerprint", fp.Key(),
		)
	}
	return unlock, stored, nil
}

// waitForPeer polls the store until the lock holder's result appears or the
// lock TTL passes. When the holder gives up without storing a result the lock
// frees up, and the waiter takes it over and returns its unlock.
func (s *PredictionService) waitForPeer(ctx context.Context, fp entities.Fingerprint) (func(), *gorm.PredictionRequest, error) {
	deadline := time.NewTimer(s.lockTTL)
	defer deadline.Stop()
	ticker := time.NewTicker(s.lockPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-deadline.C:
			return nil, nil, nil
		case <-ticker.C:
			stored, err := s.findStored(ctx, fp)
			if err != nil || stored != nil {
				return nil, stored, err
			}

			unlock, ok, err := s.lock.TryLock(ctx, fp.Key(), s.lockTTL)
			if err != nil || !ok {
				continue
			}
			// the holder may have saved between our read and its release
			stored, err = s.findStored(ctx, fp)
			if err != nil || stored != nil {
				unlock()
				return nil, stored, err
			}
			return unlock, nil, nil
		}
	}
}

// weatherFor is best effort: any failure leaves the features at zero
func (s *PredictionService) weatherFor(
	ctx context.Context,
	log *zap.SugaredLogger,
	airport *gorm.Airport,
	at time.Time,
) dtos.WeatherFeatures {
	if s.weather == nil {
		return dtos.WeatherFeatures{}
	}

	start := time.Now()
	features, err := s.weather.FetchFeatures(ctx, airport.Latitude, airport.Longitude, at)
	s.observeExternal("weather", start, err)
	if err != nil {
		log.Warnw("Weather unavailable, using zero features", "iata", airport.IATA, "error", err.Error())
		return dtos.WeatherFeatures{}
	}
	return features
}

func (s *PredictionService) observeExternal(provider string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ExternalCallDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.ExternalCallErrors.WithLabelValues(provider).Inc()
	}
}

func (s *PredictionService) recordPrediction(p *gorm.Prediction, origin string) {
	if s.metrics == nil || p == nil {
		return
	}
	s.metrics.PredictionsTotal.WithLabelValues(string(p.Verdict), origin).Inc()
	if origin == "stored" {
		s.metrics.PredictionDedupHits.Inc()
	}
}

// NormalizeFlightTime converts to UTC at whole-second precision, the precision
// every supported database round-trips exactly.
func NormalizeFlightTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// BuildModelQuery maps a fingerprint and weather onto the model's feature record
func BuildModelQuery(fp entities.Fingerprint, originWeather, destWeather dtos.WeatherFeatures) dtos.ModelQuery {
	t := fp.FlightDateUTC.UTC()

	dayOfWeek := int(t.Weekday())
	if dayOfWeek == 0 {
		dayOfWeek = 7
	}

	return dtos.ModelQuery{
		Year:           t.Year(),
		Month:          int(t.Month()),
		DayOfMonth:     t.Day(),
		DayOfWeek:      dayOfWeek,
		DepHour:        t.Hour(),
		DepMinute:      t.Minute(),
		DepMinuteOfDay: t.Hour()*60 + t.Minute(),
		Carrier:        fp.Carrier,
		Origin:         fp.Origin,
		Dest:           fp.Dest,
		DistanceKm:     fp.DistanceKm,
		OriginWeather:  originWeather,
		DestWeather:    destWeather,
	}
}

func toPredictionResult(req *gorm.PredictionRequest, cached bool) *dtos.PredictionResult {
	result := &dtos.PredictionResult{
		RequestID:     req.ID,
		FlightDateUTC: req.FlightDateUTC.UTC(),
		Carrier:       req.CarrierCode,
		Origin:        req.OriginIATA,
		Dest:          req.DestIATA,
		DistanceKm:    req.DistanceKm,
		Cached:        cached,
	}
	if req.Prediction != nil {
		result.Verdict = string(req.Prediction.Verdict)
		result.Probability = req.Prediction.Probability
		result.Confidence = string(req.Prediction.Confidence)
	}
	return result
}
