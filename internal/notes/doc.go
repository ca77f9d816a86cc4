// Package notes turns a project's changelog into a release-notes file.
//
// An Extractor reads the changelog, selects one version section (the most
// recent by default) and writes its body to the output file, replacing any
// previous content. All file access goes through an afero.Fs so the whole
// flow can run against an in-memory filesystem.
package notes
