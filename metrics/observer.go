package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/kochabx/apikit/eventbus"
	"github.com/kochabx/apikit/httpclient"
)

// RequestObserver feeds httpclient calls into the request metrics.
func (p *Prometheus) RequestObserver() httpclient.Observer {
	return requestObserver{p}
}

// EventObserver feeds bus emissions into the event metrics.
func (p *Prometheus) EventObserver() eventbus.Observer {
	return eventObserver{p}
}

type requestObserver struct{ p *Prometheus }

func (o requestObserver) ObserveRequest(method, endpoint string, status int, elapsed time.Duration, _ error) {
	resource := resourceOf(endpoint)
	o.p.requests.WithLabelValues(method, resource, strconv.Itoa(status)).Inc()
	o.p.requestDuration.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}

type eventObserver struct{ p *Prometheus }

func (o eventObserver) ObserveEmit(event string, _ int) {
	o.p.emitted.WithLabelValues(event).Inc()
}

func (o eventObserver) ObserveFailure(event string, _ error) {
	o.p.failures.WithLabelValues(event).Inc()
}

// resourceOf keeps the first path segment so ids do not explode label
// cardinality: "users/42" -> "users".
func resourceOf(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "/")
	if i := strings.IndexAny(endpoint, "/?"); i >= 0 {
		endpoint = endpoint[:i]
	}
	if endpoint == "" {
		return "unknown"
	}
	return endpoint
}
