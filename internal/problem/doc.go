// Package problem defines the findings model shared by the check engine
// and its consumers.
//
// # Data model
//
// Problem is the central record. It contains:
//
//   - Kind: closed taxonomy with a stable name (FIELD_SHOULD_BE_FINAL), a
//     short ID (GEN1001), a category and a default severity.
//   - CodePosition: path plus 1-based start/end line and column.
//   - Key and Args: a localization key and its named substitutions; the
//     message text is rendered by consumers.
//   - Severity and the name of the reporting check.
//
// Problems are immutable values. Two problems with the same kind and
// position are duplicates; Bag, DedupReporter and NewReport keep the first.
//
// CompilerDiagnostic carries a Java compiler message next to problems.
// Report keeps problems, compiler diagnostics, engine errors and opaque
// external sections as siblings; Findings merges the first two into one
// (path, line, column) ordering.
//
// # Emitting problems
//
// Checks report through a Reporter. The engine stacks a DedupReporter on
// top of a capped BagReporter per check so that duplicates never consume
// the cap.
//
// Package problem does no IO apart from decoding compiler diagnostics.
// Rendering lives in internal/diagfmt.
package problem
