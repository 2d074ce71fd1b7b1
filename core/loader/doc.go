// Package loader registers the features that contribute HTTP routes.
//
// A feature reports its name and whether it is enabled; the Manager loads
// the enabled ones in registration order and skips the rest with an info log.
package loader
