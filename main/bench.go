package main

import (
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/rawbytedev/takeref"
)

// payload is the scalar element used by the scalar scenarios.
type payload struct {
	ID   int64
	Tags []string
}

func (p payload) Clone() payload {
	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)
	return payload{ID: p.ID, Tags: tags}
}

func (p payload) size() int {
	n := 8
	for _, t := range p.Tags {
		n += len(t)
	}
	return n
}

// Result summarises one scenario.
type Result struct {
	Scenario string
	Kind     takeref.Kind
	Takes    int
	Dups     int
	Bytes    uint64
}

type Runner struct {
	cfg   Config
	log   logrus.FieldLogger
	takes *prometheus.CounterVec
	dups  *prometheus.CounterVec
	bytes *prometheus.CounterVec
}

func NewRunner(cfg Config, log logrus.FieldLogger, reg prometheus.Registerer) *Runner {
	labels := []string{"abstraction", "kind"}
	r := &Runner{
		cfg: cfg,
		log: log,
		takes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "takeref",
			Name:      "take_total",
			Help:      "Consuming Take calls by abstraction and variant.",
		}, labels),
		dups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "takeref",
			Name:      "dup_total",
			Help:      "Element duplications performed by Take.",
		}, labels),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "takeref",
			Name:      "dup_bytes_total",
			Help:      "Approximate bytes copied by Take.",
		}, labels),
	}
	reg.MustRegister(r.takes, r.dups, r.bytes)
	return r
}

// Run executes every scenario cfg.Iterations times.
func (r *Runner) Run() ([]Result, error) {
	scenarios := []func() (Result, error){
		func() (Result, error) { return r.scalar(takeref.Owned) },
		func() (Result, error) { return r.scalar(takeref.Borrowed) },
		func() (Result, error) { return r.scalar(takeref.BorrowedMut) },
		func() (Result, error) { return r.sequence(takeref.Owned) },
		func() (Result, error) { return r.sequence(takeref.Borrowed) },
		func() (Result, error) { return r.text(takeref.Owned) },
		func() (Result, error) { return r.text(takeref.Borrowed) },
	}
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		res, err := sc()
		if err != nil {
			return results, err
		}
		r.log.WithFields(logrus.Fields{
			"scenario": res.Scenario,
			"kind":     res.Kind.String(),
			"takes":    res.Takes,
			"dups":     res.Dups,
			"copied":   humanize.Bytes(res.Bytes),
		}).Info("scenario done")
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) record(res *Result, dups, bytes int) {
	k := res.Kind.String()
	res.Takes++
	res.Dups += dups
	res.Bytes += uint64(bytes)
	r.takes.WithLabelValues(res.Scenario, k).Inc()
	if dups > 0 {
		r.dups.WithLabelValues(res.Scenario, k).Add(float64(dups))
		r.bytes.WithLabelValues(res.Scenario, k).Add(float64(bytes))
	}
}

func (r *Runner) scalar(kind takeref.Kind) (Result, error) {
	res := Result{Scenario: "scalar", Kind: kind}
	src := payload{ID: 42, Tags: []string{"azerty", "hello", "world"}}
	for i := 0; i < r.cfg.Iterations; i++ {
		dups := 0
		counted := func(p payload) (payload, error) {
			dups++
			return p.Clone(), nil
		}
		var v takeref.TakeRef[payload]
		switch kind {
		case takeref.Owned:
			v = takeref.Own(src.Clone())
		case takeref.Borrowed:
			v = takeref.BorrowWith(&src, counted)
		default:
			v = takeref.BorrowMutWith(&src, counted)
		}
		out, err := consumeRef(v)
		if err != nil {
			return res, err
		}
		bytes := 0
		if dups > 0 {
			bytes = out.size()
		}
		r.record(&res, dups, bytes)
	}
	return res, nil
}

func (r *Runner) sequence(kind takeref.Kind) (Result, error) {
	res := Result{Scenario: "sequence", Kind: kind}
	src := make([]int64, r.cfg.SliceLen)
	for i := range src {
		src[i] = int64(i)
	}
	for i := 0; i < r.cfg.Iterations; i++ {
		dups := 0
		var v takeref.TakeSlice[int64]
		if kind == takeref.Owned {
			own := make([]int64, len(src))
			copy(own, src)
			v = takeref.OwnSlice(own)
		} else {
			v = takeref.BorrowSliceWith(src, func(e int64) (int64, error) {
				dups++
				return e, nil
			})
		}
		if _, err := consumeSlice(v); err != nil {
			return res, err
		}
		r.record(&res, dups, dups*8)
	}
	return res, nil
}

func (r *Runner) text(kind takeref.Kind) (Result, error) {
	res := Result{Scenario: "text", Kind: kind}
	for i := 0; i < r.cfg.Iterations; i++ {
		var (
			v   takeref.TakeString
			src *byte
		)
		if kind == takeref.Owned {
			buf := []byte(r.cfg.Text)
			src = unsafe.SliceData(buf)
			v = takeref.OwnString(buf)
		} else {
			src = unsafe.StringData(r.cfg.Text)
			v = takeref.BorrowString(r.cfg.Text)
		}
		out, err := consumeString(v)
		if err != nil {
			return res, err
		}
		n := copiedBytes(src, out)
		dups := 0
		if n > 0 {
			dups = 1
		}
		r.record(&res, dups, n)
	}
	return res, nil
}

// copiedBytes reports how many bytes Take copied: zero when out still points
// at the source storage.
func copiedBytes(src *byte, out []byte) int {
	if len(out) == 0 || unsafe.SliceData(out) == src {
		return 0
	}
	return len(out)
}

// The consumers read the view twice before taking, like a real callee that
// inspects a value before deciding to keep it.

func consumeRef[T any](v takeref.TakeRef[T]) (T, error) {
	_ = v.AsRef()
	_ = v.AsRef()
	return v.Take()
}

func consumeSlice[T any](v takeref.TakeSlice[T]) ([]T, error) {
	_ = v.AsSlice().Len()
	_ = v.AsSlice().Len()
	return v.Take()
}

func consumeString(v takeref.TakeString) ([]byte, error) {
	_ = v.AsStr()
	_ = v.AsStr()
	return v.Take()
}
