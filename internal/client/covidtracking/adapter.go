package covidtracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GregMSThompson/covid-tracker/internal/dto"
	"github.com/GregMSThompson/covid-tracker/internal/errs"
	"github.com/GregMSThompson/covid-tracker/pkg/helpers"
	"github.com/GregMSThompson/covid-tracker/pkg/logger"
)

const (
	serviceName    = "covidtracking"
	DefaultBaseURL = "https://api.covidtracking.com/v1/"

	nationalPath = "us/daily.json"
	statesPath   = "states/daily.json"
)

// dateLayouts are tried in order; the feed mostly uses the first with a "Z" suffix.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type Adapter struct {
	baseURL string
	client  *http.Client
}

func NewAdapter(baseURL string, timeout time.Duration) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Adapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchNational returns the national feed in source order (most recent first).
func (a *Adapter) FetchNational(ctx context.Context) ([]dto.RawRecord, error) {
	return a.fetch(ctx, nationalPath)
}

// FetchStates returns the per-state feed in source order (most recent first, interleaved).
func (a *Adapter) FetchStates(ctx context.Context) ([]dto.RawRecord, error) {
	return a.fetch(ctx, statesPath)
}

type wireRecord struct {
	DateChecked      *string `json:"dateChecked"`
	PositiveIncrease *int    `json:"positiveIncrease"`
	NegativeIncrease *int    `json:"negativeIncrease"`
	DeathIncrease    *int    `json:"deathIncrease"`
	State            string  `json:"state"`
}

func (a *Adapter) fetch(ctx context.Context, path string) ([]dto.RawRecord, error) {
	log := logger.FromContext(ctx)
	endpoint, err := url.JoinPath(a.baseURL, path)
	if err != nil {
		return nil, errs.NewExternalServiceError(serviceName, "invalid upstream url", false, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.NewExternalServiceError(serviceName, "failed to create request", false, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errs.NewExternalServiceError(serviceName, err.Error(), isTransient(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn("upstream returned error status", "path", path, "status", resp.StatusCode)
		msg := fmt.Sprintf("%s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
		return nil, errs.NewExternalServiceError(serviceName, msg, resp.StatusCode >= 500, nil)
	}

	var wire []wireRecord
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, errs.NewExternalServiceError(serviceName, "failed to decode "+path, false, err)
	}

	out := make([]dto.RawRecord, 0, len(wire))
	for _, w := range wire {
		out = append(out, convert(w))
	}
	if logger.IsDebugEnabled(ctx) {
		log.Debug("upstream feed fetched", "path", path, "records", len(out), "elapsed", time.Since(start))
	}
	return out, nil
}

func convert(w wireRecord) dto.RawRecord {
	rec := dto.RawRecord{
		PositiveIncrease: helpers.Value(w.PositiveIncrease),
		NegativeIncrease: helpers.Value(w.NegativeIncrease),
		DeathIncrease:    helpers.Value(w.DeathIncrease),
		State:            w.State,
	}
	if w.DateChecked != nil {
		if t, ok := parseDateChecked(*w.DateChecked); ok {
			rec.DateChecked = &t
		}
	}
	return rec
}

// parseDateChecked understands the feed's "T24:00:00" end-of-day notation,
// which means midnight at the start of the following day.
func parseDateChecked(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	rollover := false
	if i := strings.Index(s, "T24:00:00"); i >= 0 {
		s = s[:i] + "T00:00:00" + s[i+len("T24:00:00"):]
		rollover = true
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if rollover {
			t = t.AddDate(0, 0, 1)
		}
		return t, true
	}
	return time.Time{}, false
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
