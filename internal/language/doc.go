// Package language resolves ISO 639 codes and language names.
//
// Codes are canonicalized through golang.org/x/text/language; bibliographic
// ISO 639-2/B aliases ("fre", "ger") and common English or native names are
// folded into the same Language value so track metadata and configuration
// compare equal regardless of the spelling used.
package language
