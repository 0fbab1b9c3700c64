// Package general holds checks about variables: fields that could be
// final, locals that are really constants, reassigned parameters and
// assignments without effect.
package general
