// Package evaluator runs the external Nextflow config evaluator and turns its
// property-format output into a typed Mapping.
//
// Each evaluation starts a heavyweight interpreter, so every Extractor owns a
// single evaluation slot: concurrent callers queue on it rather than spawning
// processes side by side. Results are cached by the content hash of the
// evaluated text.
package evaluator
