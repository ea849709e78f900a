// Package sweep evaluates one estimator over a range of values of a single
// input parameter, holding the others at the dashboard defaults.
package sweep

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MaxSteps bounds the number of evaluated points.
const MaxSteps = 10000

// Point is one evaluation of the sweep.
type Point struct {
	Value  float64 `json:"value"`
	Result float64 `json:"result"`
	Err    string  `json:"error,omitempty"`
}

// Result is a completed sweep. Statistics cover the valid points only.
type Result struct {
	Tool   string  `json:"tool"`
	Param  string  `json:"param"`
	Metric string  `json:"metric"`
	Points []Point `json:"points"`
	Valid  int     `json:"valid"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	// Slope is the least-squares change of Metric per unit of Param.
	Slope float64 `json:"slope"`
}

// Request describes a sweep.
type Request struct {
	Tool  string
	Param string
	From  float64
	To    float64
	Steps int
	// Now supplies the current year to the price estimator.
	Now func() time.Time
}

// ErrUnknownParam is returned for a parameter the tool does not sweep.
var ErrUnknownParam = errors.New("unknown sweep parameter")

type target interface {
	metric() string
	params() []string
	eval(param string, v float64, now func() time.Time) (float64, error)
}

type toolTarget[I any] struct {
	name    string
	base    func() I
	setters map[string]func(*I, float64)
	run     func(I, func() time.Time) (float64, error)
}

func (t toolTarget[I]) metric() string { return t.name }

func (t toolTarget[I]) params() []string {
	out := make([]string, 0, len(t.setters))
	for p := range t.setters {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (t toolTarget[I]) eval(param string, v float64, now func() time.Time) (float64, error) {
	set, ok := t.setters[param]
	if !ok {
		return 0, fmt.Errorf("%w %q (known: %v)", ErrUnknownParam, param, t.params())
	}
	in := t.base()
	set(&in, v)
	return t.run(in, now)
}

// Params lists the sweepable parameters of tool.
func Params(tool string) ([]string, error) {
	t, ok := targets[tool]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", tool)
	}
	return t.params(), nil
}

// Run evaluates the request. Inputs rejected by the estimator become points
// carrying the error; the sweep itself only fails on a malformed request.
func Run(req Request) (Result, error) {
	t, ok := targets[req.Tool]
	if !ok {
		return Result{}, fmt.Errorf("unknown tool %q", req.Tool)
	}
	if req.Steps < 1 || req.Steps > MaxSteps {
		return Result{}, fmt.Errorf("steps must be within [1,%d], got %d", MaxSteps, req.Steps)
	}
	if math.IsNaN(req.From) || math.IsNaN(req.To) || math.IsInf(req.From, 0) || math.IsInf(req.To, 0) {
		return Result{}, errors.New("sweep bounds must be finite")
	}
	if _, err := t.eval(req.Param, req.From, req.Now); errors.Is(err, ErrUnknownParam) {
		return Result{}, err
	}

	values := make([]float64, req.Steps)
	if req.Steps == 1 {
		values[0] = req.From
	} else {
		floats.Span(values, req.From, req.To)
	}

	res := Result{Tool: req.Tool, Param: req.Param, Metric: t.metric(), Points: make([]Point, len(values))}
	var xs, ys []float64
	for i, v := range values {
		p := Point{Value: v}
		r, err := t.eval(req.Param, v, req.Now)
		if err != nil {
			p.Err = err.Error()
		} else {
			p.Result = r
			xs = append(xs, v)
			ys = append(ys, r)
		}
		res.Points[i] = p
	}

	res.Valid = len(ys)
	if res.Valid > 0 {
		res.Min = floats.Min(ys)
		res.Max = floats.Max(ys)
		res.Mean = stat.Mean(ys, nil)
	}
	if res.Valid > 1 && floats.Max(xs) > floats.Min(xs) {
		_, res.Slope = stat.LinearRegression(xs, ys, nil, false)
	}
	return res, nil
}
