package app

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/x/offer"
)

// Metrics is a decorator that counts processed transactions and measures
// their duration. Failed transactions are labelled with their error code.
// Successfully delivered offer messages are additionally counted as opened
// or settled offers.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
	offers   *prometheus.CounterVec
}

var _ swapper.Decorator = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	txs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swapper",
		Name:      "transactions_total",
		Help:      "Number of processed transactions",
	}, []string{"phase", "path", "result"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "swapper",
		Name:      "transaction_duration_seconds",
		Help:      "Time spent processing a transaction",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"phase", "path"})

	offers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swapper",
		Name:      "offers_total",
		Help:      "Number of offers opened and settled",
	}, []string{"event"})

	reg.MustRegister(txs, duration, offers)
	return &Metrics{
		txs:      txs,
		duration: duration,
		offers:   offers,
	}
}

func (m *Metrics) Check(ctx swapper.Context, store swapper.KVStore, tx swapper.Tx, next swapper.Checker) (*swapper.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", swapper.GetPath(tx), start, err)
	return res, err
}

func (m *Metrics) Deliver(ctx swapper.Context, store swapper.KVStore, tx swapper.Tx, next swapper.Deliverer) (*swapper.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	path := swapper.GetPath(tx)
	m.observe("deliver", path, start, err)
	if err == nil {
		if event, ok := offerEvents[path]; ok {
			m.offers.WithLabelValues(event).Inc()
		}
	}
	return res, err
}

var offerEvents = map[string]string{
	offer.CreateOfferMsg{}.Path():  "opened",
	offer.FulfillOfferMsg{}.Path(): "settled",
}

func (m *Metrics) observe(phase, path string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = strconv.FormatUint(uint64(errors.Code(err)), 10)
	}
	m.txs.WithLabelValues(phase, path, result).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}
