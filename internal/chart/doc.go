// Package chart renders walk distributions as a figure description (JSON),
// a terminal line chart, or a standalone SVG.
package chart
