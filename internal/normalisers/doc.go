// Package normalisers turns fetched or read bytes into content records.
// Each normaliser handles a set of MIME types and the Registry picks the
// highest-priority match for a given RawContent.
//
// Normalisers are registered with the Registry at startup.
package normalisers
