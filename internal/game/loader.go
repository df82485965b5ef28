package game

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/seabed/internal/assets"
	"github.com/Faultbox/seabed/internal/config"
	"github.com/Faultbox/seabed/internal/logger"
	"github.com/Faultbox/seabed/internal/scene"
)

// propsResult is the outcome of scattering on the loader goroutine.
type propsResult struct {
	placements []scene.Placement
	err        error
}

// loader tracks the background work that feeds the session. Results are
// only consumed on the main thread by poll.
type loader struct {
	whale  <-chan assets.Result
	props  <-chan propsResult
	cancel context.CancelFunc
}

// startLoading kicks off the whale model load and prop scattering.
func startLoading(cfg *config.Config, models *assets.Manager, seed int64) *loader {
	ctx, cancel := context.WithCancel(context.Background())

	props := make(chan propsResult, 1)
	go func() {
		defer close(props)
		rng := rand.New(rand.NewSource(seed))
		ps, err := scene.Scatter(cfg.Props, cfg.World.SeafloorY, models, rng)
		select {
		case props <- propsResult{placements: ps, err: err}:
		case <-ctx.Done():
		}
	}()

	logger.Info("loading started",
		zap.Duration("whaleDelay", cfg.Whale.LoadDelay),
		zap.Int64("seed", seed),
		zap.Strings("models", models.Names()))
	return &loader{
		whale:  models.LoadAsync(ctx, "whale"),
		props:  props,
		cancel: cancel,
	}
}

// poll delivers finished results without blocking. Each callback runs at
// most once over the loader's lifetime.
func (l *loader) poll(onWhale func(*assets.Model), onProps func([]scene.Placement)) {
	select {
	case res, ok := <-l.whale:
		l.whale = nil
		switch {
		case !ok:
		case res.Err != nil:
			logger.Error("whale model failed to load", zap.Error(res.Err))
		default:
			onWhale(res.Model)
		}
	default:
	}

	select {
	case res, ok := <-l.props:
		l.props = nil
		switch {
		case !ok:
		case res.err != nil:
			logger.Error("prop scattering failed", zap.Error(res.err))
		default:
			onProps(res.placements)
		}
	default:
	}
}

// done reports whether every result has been consumed.
func (l *loader) done() bool {
	return l.whale == nil && l.props == nil
}

func (l *loader) stop() {
	l.cancel()
}
