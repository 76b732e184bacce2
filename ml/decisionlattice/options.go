package decisionlattice

import (
	"sort"

	"github.com/mikulatomas/FCApy/lattice"
	"github.com/mikulatomas/FCApy/pkg/errors"
	"github.com/mikulatomas/FCApy/pkg/log"
)

const (
	// DefaultAlgorithm is the lattice construction algorithm used unless
	// WithAlgorithm says otherwise.
	DefaultAlgorithm = lattice.AlgorithmCbO
	// DefaultSizeCap bounds the number of concepts in the fitted lattice.
	DefaultSizeCap = 1000
	// DefaultParallelThreshold is the object count under which prediction
	// stays on the calling goroutine.
	DefaultParallelThreshold = 64
)

// Option configures a Classifier or a Regressor.
type Option func(*predictor)

// WithAlgorithm selects the lattice construction algorithm.
func WithAlgorithm(algorithm string) Option {
	return func(p *predictor) {
		p.algorithm = algorithm
	}
}

// WithSizeCap sets the maximum number of concepts.
func WithSizeCap(n int) Option {
	return func(p *predictor) {
		p.sizeCap = n
	}
}

// WithBuilder replaces the lattice builder.
func WithBuilder(b lattice.Builder) Option {
	return func(p *predictor) {
		p.builder = b
	}
}

// WithTracer replaces the tracer.
func WithTracer(t lattice.Tracer) Option {
	return func(p *predictor) {
		p.tracer = t
	}
}

// WithLogger sets the logger. Defaults to log.GetLogger().
func WithLogger(l log.Logger) Option {
	return func(p *predictor) {
		p.logger = l
	}
}

// WithParallelThreshold sets the object count above which predictions run
// in parallel.
func WithParallelThreshold(n int) Option {
	return func(p *predictor) {
		p.threshold = n
	}
}

// パラメータ名とその別名
const (
	paramAlgorithm = "algorithm"
	paramSizeCap   = "size_cap"
)

var paramAliases = map[string]string{
	paramAlgorithm: paramAlgorithm,
	"algo":         paramAlgorithm,
	paramSizeCap:   paramSizeCap,
	"L_max":        paramSizeCap,
}

// canonicalParam resolves a parameter name or one of its aliases.
func canonicalParam(name string) (string, bool) {
	canonical, ok := paramAliases[name]
	return canonical, ok
}

// GetParams returns the hyperparameters under their canonical names.
func (p *predictor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		paramAlgorithm: p.algorithm,
		paramSizeCap:   p.sizeCap,
	}
}

// SetParams updates hyperparameters. Aliases "algo" and "L_max" are
// accepted. Parameters can not be changed once the model is fitted.
func (p *predictor) SetParams(params map[string]interface{}) error {
	if err := p.state.RequireNotFitted(p.modelName, "SetParams"); err != nil {
		return err
	}

	// 別名を正規化してから検証する。複数の別名が同じ値を指す場合は名前順で後勝ち。
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	algorithm, sizeCap := p.algorithm, p.sizeCap
	for _, name := range names {
		canonical, ok := canonicalParam(name)
		if !ok {
			return errors.NewValidationError(name, "unknown parameter", params[name])
		}
		value := params[name]
		switch canonical {
		case paramAlgorithm:
			s, ok := value.(string)
			if !ok || s == "" {
				return errors.NewValidationError(name, "must be a non-empty string", value)
			}
			algorithm = s
		case paramSizeCap:
			n, err := toInt(value)
			if err != nil || n <= 0 {
				return errors.NewValidationError(name, "must be a positive integer", value)
			}
			sizeCap = n
		}
	}

	p.algorithm, p.sizeCap = algorithm, sizeCap
	return nil
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, errors.Newf("%v is not integral", n)
		}
		return int(n), nil
	}
	return 0, errors.Newf("unsupported type %T", v)
}
