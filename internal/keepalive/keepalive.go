// Package keepalive pings the service's own health endpoint on a fixed
// interval so free-tier hosts do not idle the instance out.
package keepalive

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultInterval = 14 * time.Minute

// Pinger periodically GETs a URL until its context is cancelled.
type Pinger struct {
	url      string
	interval time.Duration
	client   *http.Client
	logger   *zerolog.Logger
}

func NewPinger(url string, interval time.Duration, logger *zerolog.Logger) *Pinger {
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Pinger{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// Start runs the ping loop until ctx is cancelled. Failed pings are logged
// and the loop keeps going.
func (p *Pinger) Start(ctx context.Context) {
	p.logger.Info().
		Str("url", p.url).
		Dur("interval", p.interval).
		Msg("keep-alive pinger started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug().Msg("keep-alive pinger stopped")
			return
		case <-ticker.C:
			p.ping(ctx)
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.logger.Warn().Err(err).Msg("keep-alive request build failed")
		return
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn().Err(err).Msg("keep-alive ping failed")
		return
	}
	defer resp.Body.Close()

	p.logger.Debug().
		Int("status", resp.StatusCode).
		Msg("keep-alive ping")
}
