// Package domain holds the SPPT notice model, the rendered-document value and
// the error taxonomy shared by renderers, the scratch area and HTTP handlers.
// Keep this package free of transport (HTTP) and infrastructure concerns.
package domain
