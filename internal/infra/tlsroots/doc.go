// Package tlsroots builds the root certificate pool kvcli trusts when the
// service is reached over HTTPS.
//
// The system roots are always included. A PEM bundle named by
// http.ca_file in the configuration is added on top, which is how a
// self-signed service or an inspecting proxy is trusted.
package tlsroots
