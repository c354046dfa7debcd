/*
Package observability provides Prometheus instrumentation for the HPGL interpreter.

Metrics are collected through lifecycle hooks, so the interpreter itself stays free
of any monitoring dependency. Each Metrics value owns its registry, which keeps
tests and embedded servers isolated from the global default registry.
*/
package observability
