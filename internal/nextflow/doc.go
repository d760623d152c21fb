// Package nextflow resolves the secondary files and manifest metadata of a
// Nextflow workflow from its main configuration file.
//
// The config evaluator refuses to run while included files are missing, yet
// the includes are exactly what needs discovering. The resolver therefore
// works in two passes over the same text: include directives are found by
// scanning the original text, and the manifest is read by evaluating a copy
// with those directives blanked out.
package nextflow
