// Package solarroi models a portfolio of solar and microgrid capital projects
// and computes their headline financial outputs.
//
// The core is [ComputeOutputs]: a pure function of a project's model
// variables and its deployment [Track] returning NPV, ROI, simple payback,
// capex, first year savings and total tax benefit, each tagged with a
// [Confidence].
//
// Around it the package provides:
//   - Variables: an open [VariableMap] with lenient coercion rules, and the
//     [Catalog] of variables a practitioner edits, with clamping and warnings.
//   - Projects: the [Project] record, its site team and track preview.
//   - Portfolio: filtering, executive KPIs and pipeline counts.
//   - Persistence: a [Store] over any key/value [Backend] (see package kv),
//     and JSON/JSONL import and export formats.
//
// Projects are edited under the practitioner [Lens] only; the executive lens
// is read only.
//
// This package is the foundation of the `sroi` command-line tool.
package solarroi
