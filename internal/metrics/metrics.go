// Package metrics records render lifecycle counters with prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"wordsphere/internal/scene"
)

// Recorder implements scene.Observer.
type Recorder struct {
	reg prometheus.Gatherer

	mounts       prometheus.Counter
	mountErrors  *prometheus.CounterVec
	frames       prometheus.Counter
	renderErrors prometheus.Counter
	disposals    prometheus.Counter
	labels       prometheus.Gauge
}

var _ scene.Observer = (*Recorder)(nil)

// New registers the wordsphere metrics on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		reg: reg,
		mounts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wordsphere",
			Name:      "mounts_total",
			Help:      "Scenes mounted.",
		}),
		mountErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordsphere",
			Name:      "mount_errors_total",
			Help:      "Failed mounts by error kind.",
		}, []string{"kind"}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wordsphere",
			Name:      "frames_total",
			Help:      "Frames rendered by the render loop.",
		}),
		renderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wordsphere",
			Name:      "render_errors_total",
			Help:      "Frames whose surface failed to render.",
		}),
		disposals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wordsphere",
			Name:      "scene_disposals_total",
			Help:      "Scenes torn down.",
		}),
		labels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wordsphere",
			Name:      "labels",
			Help:      "Labels in the live scene.",
		}),
	}
	reg.MustRegister(r.mounts, r.mountErrors, r.frames, r.renderErrors, r.disposals, r.labels)
	return r
}

func (r *Recorder) Mounted(_ string, labels int) {
	r.mounts.Inc()
	r.labels.Set(float64(labels))
}

func (r *Recorder) MountFailed(err error) {
	r.mountErrors.WithLabelValues(Kind(err)).Inc()
}

func (r *Recorder) Rendered() { r.frames.Inc() }

func (r *Recorder) RenderFailed(error) { r.renderErrors.Inc() }

func (r *Recorder) Disposed(string) {
	r.disposals.Inc()
	r.labels.Set(0)
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.reg }

// WriteFile writes the current values in the text exposition format.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}

// Kind names the error class used as a metric label.
func Kind(err error) string {
	switch {
	case errors.Is(err, scene.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, scene.ErrResourceUnavailable):
		return "resource_unavailable"
	case errors.Is(err, scene.ErrDisposed):
		return "disposed"
	}
	return "other"
}
