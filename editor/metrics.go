/*
Copyright © 2024 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package editor

// File metrics contains all metrics that needs to be exposed to Prometheus and
// indirectly to Grafana.

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/ccx-calculator/conf"
	"github.com/RedHatInsights/ccx-calculator/utils"
)

// Metrics names
const (
	EventsHandledName    = "events_handled"
	EditsRejectedName    = "edits_rejected"
	EvaluationsName      = "evaluations"
	EvaluationErrorsName = "evaluation_errors"
	AutoResetsName       = "auto_resets"
)

// Metrics helps
const (
	EventsHandledHelp    = "The total number of symbol events handled by the editor"
	EditsRejectedHelp    = "The total number of edits absorbed as no-op"
	EvaluationsHelp      = "The total number of evaluated expressions"
	EvaluationErrorsHelp = "The total number of evaluations that produced the NaN error token"
	AutoResetsHelp       = "The total number of error tokens cleared by the following event"
)

// PushGatewayClient is a simple wrapper over http.Client so that prometheus
// can do HTTP requests with the given authentication header
type PushGatewayClient struct {
	AuthToken string

	httpClient http.Client
}

// Do is a simple wrapper over http.Client.Do method that includes
// the authentication header configured in the PushGatewayClient instance
func (pgc *PushGatewayClient) Do(request *http.Request) (*http.Response, error) {
	if pgc.AuthToken != "" {
		log.Debug().Msg("Adding authorization header to HTTP request")
		request.Header.Set("Authorization", "Basic "+pgc.AuthToken)
	} else {
		log.Debug().Msg("No authorization token provided. Making HTTP request without credentials.")
	}
	log.Debug().Str("request", request.URL.String()).Str("method", request.Method).Msg("Pushing metrics to Prometheus push gateway")
	resp, err := pgc.httpClient.Do(request)
	if resp != nil {
		log.Debug().Int("code", resp.StatusCode).Msg("Returned status code")
	}
	return resp, err
}

// EventsHandled shows number of symbol events handled by the editor
var EventsHandled = promauto.NewCounter(prometheus.CounterOpts{
	Name: EventsHandledName,
	Help: EventsHandledHelp,
})

// EditsRejected shows number of edits that did not change the expression
var EditsRejected = promauto.NewCounter(prometheus.CounterOpts{
	Name: EditsRejectedName,
	Help: EditsRejectedHelp,
})

// Evaluations shows number of evaluated expressions
var Evaluations = promauto.NewCounter(prometheus.CounterOpts{
	Name: EvaluationsName,
	Help: EvaluationsHelp,
})

// EvaluationErrors shows number of evaluations resulting in NaN
var EvaluationErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: EvaluationErrorsName,
	Help: EvaluationErrorsHelp,
})

// AutoResets shows number of error tokens cleared by next event
var AutoResets = promauto.NewCounter(prometheus.CounterOpts{
	Name: AutoResetsName,
	Help: AutoResetsHelp,
})

// AddMetricsWithNamespace register the desired metrics using a given namespace
func AddMetricsWithNamespace(namespace string) {
	// Unregister all metrics and registrer them again
	prometheus.Unregister(EventsHandled)
	prometheus.Unregister(EditsRejected)
	prometheus.Unregister(Evaluations)
	prometheus.Unregister(EvaluationErrors)
	prometheus.Unregister(AutoResets)

	EventsHandled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      EventsHandledName,
		Help:      EventsHandledHelp,
	})

	EditsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      EditsRejectedName,
		Help:      EditsRejectedHelp,
	})

	Evaluations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      EvaluationsName,
		Help:      EvaluationsHelp,
	})

	EvaluationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      EvaluationErrorsName,
		Help:      EvaluationErrorsHelp,
	})

	AutoResets = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      AutoResetsName,
		Help:      AutoResetsHelp,
	})
}

// PushMetrics function pushes the metrics to the configured prometheus push
// gateway. The push is retried metricsConf.Retries times at most.
func PushMetrics(metricsConf conf.MetricsConfiguration) error {
	client := PushGatewayClient{metricsConf.GatewayAuthToken, http.Client{}}

	// Creates a pusher to the gateway "$PUSHGW_URL/metrics/job/$(job_name)
	pusher := push.New(utils.SetHTTPPrefix(metricsConf.GatewayURL), metricsConf.Job).
		Collector(EventsHandled).
		Collector(EditsRejected).
		Collector(Evaluations).
		Collector(EvaluationErrors).
		Collector(AutoResets).
		Client(&client)

	var err error
	for attempt := 0; attempt <= metricsConf.Retries; attempt++ {
		err = pusher.Push()
		if err == nil {
			return nil
		}
		log.Warn().Err(err).Int("attempt", attempt+1).Msg("Unable to push metrics")
		if attempt < metricsConf.Retries {
			time.Sleep(metricsConf.RetryAfter)
		}
	}
	return err
}
