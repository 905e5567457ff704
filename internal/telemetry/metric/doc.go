// Package metric keeps client-side Prometheus metrics for kvcli.
//
// Every outbound request is counted per endpoint and outcome and its
// latency observed. Nothing is exposed over HTTP; the registry is private
// to the process and summarised on exit when running verbosely.
package metric
