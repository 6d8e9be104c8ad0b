// Package testsupport holds helpers shared by package tests: temp-dir
// configs, sized file writers, and a synthetic Matroska builder.
package testsupport
