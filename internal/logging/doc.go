// Package logging provides structured logging for prv's CLI
// invocations.
//
// # Overview
//
// Logging wraps Zap with:
//   - A custom Trace level (-2, below Debug)
//   - JSON output to stdout by default, console output when Format is
//     "console" (the encoding is not chosen from whether stdout is a TTY)
//   - Automatic context field injection (invocation id, session id)
//   - Defense-in-depth secret redaction
//
// There is no OTEL bridge and no sampling tier: a `link` or `query`
// invocation is one linear pipeline's worth of log lines, not a
// service's request firehose.
//
// # Usage
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	ctx := logging.WithInvocationID(ctx, uuid.NewString())
//	logger.Info(ctx, "resolved commit", zap.String("sha", sha))
//
// # Secret redaction
//
// Callers mark a value as sensitive explicitly with RedactedString, or
// rely on the encoder's field-name/pattern filtering (RedactingEncoder)
// to catch anything that slips through unmarked.
//
//	logger.Info(ctx, "auth attempt",
//	    logging.RedactedString("token", token))
//
// # Testing
//
// Use TestLogger for test assertions:
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "test message", zap.String("key", "value"))
//	tl.AssertLogged(t, zapcore.InfoLevel, "test message")
//	tl.AssertField(t, "test message", "key", "value")
//	tl.AssertNoSecrets(t)
package logging
