// Package identification guesses whether a video file is a movie or an
// episode from its file name.
//
// Rules are evaluated in order (SxxExx, "Season N Episode M", NxMM, then a
// release year for movies); the first match wins. Show and movie titles are
// cleaned of separators and title-cased. Nothing here touches the network or
// the file contents.
package identification
