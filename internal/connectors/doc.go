// Package connectors holds the clients that fetch repositories from hosting
// platforms. The github package is the only platform supported.
package connectors
