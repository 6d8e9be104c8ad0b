// Package signature decides whether a file is a video and reports its
// content type. The extension gate runs first; github.com/h2non/filetype
// then sniffs the header so a renamed image or archive is rejected.
package signature
