// Package modelpath gates model initialization on the presence of the
// configured weights file.
//
// The check is existence only: a directory at the configured path passes,
// and nothing about size or format is inspected. Callers get either a nil
// error or a *ConfigurationError naming the path, and decide for themselves
// whether to exit or retry with a corrected path.
package modelpath
