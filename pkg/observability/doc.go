/*
Package observability provides tools for monitoring the bisim engine.

It includes Prometheus metrics and structured-logging lifecycle hooks, and helpers to
combine several hook sets into one.
*/
package observability
