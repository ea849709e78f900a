package scenarios

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kilianp07/ecoamp/core/counter"
	"github.com/kilianp07/ecoamp/core/dashboard"
	"github.com/kilianp07/ecoamp/core/estimate"
	"github.com/kilianp07/ecoamp/infra/logger"
	"github.com/kilianp07/ecoamp/infra/metrics"
)

// RunScenario replays sc against a dashboard with an in-memory counter and
// a private Prometheus registry.
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()
	ctx := context.Background()

	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	backend := counter.NewMemoryBackend()
	if sc.StartCount != nil {
		if err := backend.Save(ctx, *sc.StartCount); err != nil {
			t.Fatalf("seed counter: %v", err)
		}
	}
	cnt := counter.New(backend, logger.NopLogger{})
	defer cnt.Close()

	opts := dashboard.Options{Counter: cnt, Sink: sink}
	if sc.Year != 0 {
		year := sc.Year
		opts.Now = func() time.Time { return time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC) }
	}
	dash := dashboard.New(opts)

	for i, st := range sc.Steps {
		out, err := call(ctx, dash, st)
		if st.ErrorField != "" {
			var iie *estimate.InvalidInputError
			if !errors.As(err, &iie) || iie.Field != st.ErrorField {
				t.Errorf("%s step %d: expected rejection on %s, got %v", sc.Name, i, st.ErrorField, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s step %d: %v", sc.Name, i, err)
			continue
		}
		checkOutput(t, sc.Name, i, out, st.Expected)
	}

	if got := cnt.Get(ctx); got != sc.ExpectCount {
		t.Errorf("scenario %s expected count %d, got %d", sc.Name, sc.ExpectCount, got)
	}
	if sc.ExpectFormat != "" {
		if got := counter.Format(cnt.Get(ctx)); got != sc.ExpectFormat {
			t.Errorf("scenario %s expected display %q, got %q", sc.Name, sc.ExpectFormat, got)
		}
	}
	n, err := testutil.GatherAndCount(reg, "ecoamp_estimates_total")
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if len(sc.Steps) > 0 && n == 0 {
		t.Errorf("scenario %s recorded no estimate metrics", sc.Name)
	}
}

func call(ctx context.Context, d *dashboard.Dashboard, st Step) (any, error) {
	tool, err := dashboard.ParseTool(st.Tool)
	if err != nil {
		return nil, err
	}
	switch tool {
	case dashboard.ToolRange:
		var in estimate.RangeInput
		if err := decode(st.Input, &in); err != nil {
			return nil, err
		}
		out, err := d.Range(ctx, in)
		return map[string]any{"estimated_km": out.EstimatedKm, "miles": out.Miles(), "hours_at_80kmh": out.HoursAt80Kmh()}, err
	case dashboard.ToolSoH:
		var in estimate.SoHInput
		if err := decode(st.Input, &in); err != nil {
			return nil, err
		}
		return d.SoH(ctx, in)
	case dashboard.ToolCost:
		var in estimate.CostInput
		if err := decode(st.Input, &in); err != nil {
			return nil, err
		}
		return d.Cost(ctx, in)
	case dashboard.ToolRegen:
		var in estimate.RegenInput
		if err := decode(st.Input, &in); err != nil {
			return nil, err
		}
		return d.Regen(ctx, in)
	default:
		var in estimate.PriceInput
		if err := decode(st.Input, &in); err != nil {
			return nil, err
		}
		return d.Price(ctx, in)
	}
}

// decode maps YAML input keys onto the JSON tags of the estimator input.
func decode(in map[string]any, dst any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func checkOutput(t *testing.T, name string, step int, out any, expected map[string]any) {
	t.Helper()
	raw, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("encode output: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	for field, want := range expected {
		g, ok := got[field]
		if !ok {
			t.Errorf("%s step %d: missing output field %s", name, step, field)
			continue
		}
		if !equal(g, want) {
			t.Errorf("%s step %d: %s = %v, want %v", name, step, field, g, want)
		}
	}
}

func equal(got, want any) bool {
	gf, gok := got.(float64)
	switch w := want.(type) {
	case int:
		return gok && gf == float64(w)
	case float64:
		return gok && math.Abs(gf-w) < 1e-9
	default:
		return got == want
	}
}
