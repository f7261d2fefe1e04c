// Package extract turns raw model-response text into ordered,
// preview-ready code units.
//
// The pipeline has four stages, run in order over one text snapshot:
//
//  1. Scan: split the text into fenced code regions, recovering one
//     trailing unterminated region left by a truncated stream.
//  2. Detect: locate and repair an embedded multi-file project
//     manifest (JSON) inside a region, tolerating surrounding prose,
//     mid-stream truncation and trailing commas.
//  3. Classify: decide per manifest file or plain region whether it is
//     a script-like unit, a markup-like unit, or not previewable, and
//     derive a display name and page order.
//  4. Normalize and assemble: rewrite recognized imports to sandbox
//     globals, strip the rest, synthesize a fallback default export,
//     and emit uniquely-identified units in scan order.
//
// The pipeline is purely computational: given a snapshot it runs to
// completion without suspension and is deterministic, so running it
// twice over unchanged input yields identical unit sequences.
package extract
