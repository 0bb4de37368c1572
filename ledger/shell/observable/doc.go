// Package observable wraps command and query handlers with metrics, tracing and logging.
//
// Wrapping happens at wiring time, handlers stay free of observability code:
//
//	coreHandler := redeemoffer.NewCommandHandler(eventStore)
//
//	handler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithCommandMetrics[redeemoffer.Command, redeemoffer.Result](metricsCollector),
//		observable.WithCommandTracing[redeemoffer.Command, redeemoffer.Result](tracingCollector),
//		observable.WithCommandContextualLogging[redeemoffer.Command, redeemoffer.Result](logger),
//	)
//
// Business outcomes are read from the HandlerResult embedded in the feature result:
// idempotent and rejected commands are recorded with their own status, they are not errors.
package observable
