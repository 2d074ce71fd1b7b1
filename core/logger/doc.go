// Package logger builds the zap logger used across the service.
//
// Level "debug" selects zap's development config, anything else the
// production config at that level. Format "console" switches to the colored
// console encoder without stack traces; the default is JSON.
//
// Two helpers derive scoped loggers:
//
//	l := logger.WithRayID(log, c)             // HTTP handlers, adds ray_id
//	l := logger.WithRun(log, "menus", run.ID) // sync passes, adds pass and run_id
package logger
