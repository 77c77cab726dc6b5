// Package simulate drives a running faceoff server with synthetic traffic:
// it seeds a collection, plays random duels through the public API, and then
// verifies ranking invariants. Used by cmd/simulate for smoke testing.
package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/okian/faceoff/internal/domain/model"
)

// Options configures a simulation run.
type Options struct {
	BaseURL     string
	Scope       string
	Items       int
	Comparisons int
	DrawRate    float64
	Seed        int64
	Timeout     time.Duration
}

// Runner executes a simulation against one server.
type Runner struct {
	opts   Options
	client *http.Client
	rng    *rand.Rand
}

// NewRunner creates a Runner with sane defaults filled in.
func NewRunner(opts Options) *Runner {
	if opts.Items < 2 {
		opts.Items = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return &Runner{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		rng:    rand.New(rand.NewSource(opts.Seed)), //nolint:gosec // synthetic traffic
	}
}

// Run seeds items, initializes the scope, and plays the configured number
// of comparisons, asking the server for a pair each round.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{Scope: r.opts.Scope}

	for i := 0; i < r.opts.Items; i++ {
		category := categories[r.rng.Intn(len(categories))]
		item, err := r.addItem(ctx, fmt.Sprintf("sample-%03d", i), category)
		if err != nil {
			return nil, fmt.Errorf("seeding item %d: %w", i, err)
		}
		report.ItemsSeeded = append(report.ItemsSeeded, item.ID)
	}

	var init model.InitResult
	if err := r.post(ctx, "/system/initialize", nil, &init); err != nil {
		return nil, fmt.Errorf("initializing system: %w", err)
	}
	report.Created = init.Created

	for i := 0; i < r.opts.Comparisons; i++ {
		var pair model.Pair
		if err := r.get(ctx, "/pair", &pair); err != nil {
			return nil, fmt.Errorf("round %d pair: %w", i, err)
		}
		winner, loser := pair.First.ID, pair.Second.ID
		if r.rng.Intn(2) == 0 {
			winner, loser = loser, winner
		}
		body := map[string]any{
			"winner_id": winner,
			"loser_id":  loser,
			"draw":      r.rng.Float64() < r.opts.DrawRate,
		}
		var outcome model.ComparisonOutcome
		if err := r.post(ctx, "/comparisons", body, &outcome); err != nil {
			return nil, fmt.Errorf("round %d record: %w", i, err)
		}
		report.ComparisonsPlayed++
	}

	if err := r.get(ctx, "/rankings?min_matches=0", &report.Rankings); err != nil {
		return nil, fmt.Errorf("fetching rankings: %w", err)
	}
	return report, nil
}

var categories = []model.Category{
	model.CategoryMovie,
	model.CategoryShow,
	model.CategoryAnime,
	model.CategoryGame,
	model.CategoryBook,
}

func (r *Runner) addItem(ctx context.Context, title string, category model.Category) (model.Item, error) {
	body := map[string]any{
		"title":        title,
		"category":     string(category),
		"external_ref": "sim-" + title,
	}
	var item model.Item
	if err := r.post(ctx, "/items", body, &item); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

func (r *Runner) url(path string) string {
	return fmt.Sprintf("%s/api/v1/users/%s%s", r.opts.BaseURL, r.opts.Scope, path)
}

func (r *Runner) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url(path), nil)
	if err != nil {
		return err
	}
	return r.do(req, out)
}

func (r *Runner) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url(path), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return r.do(req, out)
}

func (r *Runner) do(req *http.Request, out any) error {
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s %s: %d %s: %s", req.Method, req.URL.Path, resp.StatusCode, apiErr.Code, apiErr.Message)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
