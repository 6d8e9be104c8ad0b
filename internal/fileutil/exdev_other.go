//go:build !unix

package fileutil

func isEXDEV(error) bool { return false }
