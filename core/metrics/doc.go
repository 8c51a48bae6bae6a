// Package metrics declares the Prometheus collectors of scene-sync.
//
// Collectors register on the default registry at init through promauto.
// Handler serves them at /metrics; Middleware counts HTTP requests per route.
package metrics
