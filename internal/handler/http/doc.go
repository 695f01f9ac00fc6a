// Package http implements the HTTP transport of the relay and the local
// control API of the device daemon.
//
// The relay exposes envelope submission, pull and acknowledgement behind JWT
// authentication. The device exposes fetch-latest triggers for local tools.
// Both serve Prometheus metrics on /metrics. Request tracing, access logging
// and panic recovery are handled here before requests reach the service
// layer.
package http
