package cmd

import "github.com/ardnew/plx/lang"

// Command errors. Each is returned through [lang.Error.With] and
// [lang.Error.Wrap] so the attributes reach the structured log record.
var (
	ErrOpenFile      = lang.NewError("open file")
	ErrLoadCatalogue = lang.NewError("load package catalogue")
	ErrLoadState     = lang.NewError("load state file")
	ErrEncode        = lang.NewError("encode output")
	ErrWriteConfig   = lang.NewError("write configuration file")
	ErrFileExists    = lang.NewError("file exists (use --force to overwrite)")
)
