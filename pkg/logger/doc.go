// Package logger builds slog loggers with request-scoped context attributes.
//
// The factory produces JSON output for production aggregation or text output
// for development. Context extractors let packages such as tenant and session
// attach their identifiers to every log record emitted within a request:
//
//	log := logger.New(
//		logger.WithService("content-api"),
//		logger.WithContextExtractors(
//			tenant.LoggerExtractor(),
//			session.LoggerExtractor(),
//		),
//	)
package logger
