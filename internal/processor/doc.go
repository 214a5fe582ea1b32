// Package processor contains the core pipeline for translating a Word
// document in place. It orchestrates loading, the paragraph merge pre-pass,
// translation of every paragraph-like unit (body, headers, footers, table
// cells, text boxes) and saving. This package serves as the main coordinator
// between all other components.
package processor
