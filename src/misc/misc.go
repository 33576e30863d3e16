// Package misc collects the small ambient helpers used across cmd/ and the pipeline
// packages: fatal-on-error handling, log file setup and required-flag checking. Grounded on
// will-rowe/baby-groot's own src/misc package (not present in the retrieved source, but its
// call sites - misc.ErrorCheck, misc.StartLogging and misc.CheckRequiredFlags throughout
// cmd/*.go - fix its API).
package misc

import (
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// ErrorCheck exits the program with a logged message if err is non-nil. It is the CLI
// layer's only error-handling strategy: every fallible call in cmd/ is wrapped in it, on the
// understanding that a CLI invocation that can't proceed should fail loudly and immediately
// rather than attempt partial recovery.
func ErrorCheck(err error) {
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

// StartLogging opens logFile for writing, creating it if necessary, and returns the open
// file handle so the caller can point log.SetOutput at it and Close it on exit. Passing an
// empty path logs to stderr instead.
func StartLogging(logFile string) *os.File {
	if logFile == "" {
		return os.Stderr
	}
	fh, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	ErrorCheck(errors.Wrapf(err, "could not open log file %q", logFile))
	return fh
}

// CheckRequiredFlags reports an error if any flag marked required (via
// cobra's MarkFlagRequired, which cobra itself surfaces through this pflag.FlagSet) was left
// unset, listing every missing flag rather than stopping at the first.
func CheckRequiredFlags(flags *pflag.FlagSet) error {
	var missing []string
	flags.VisitAll(func(flag *pflag.Flag) {
		requiredAnnotation, found := flag.Annotations["cobra_annotation_bash_completion_one_required_flag"]
		if !found {
			return
		}
		if len(requiredAnnotation) > 0 && requiredAnnotation[0] == "true" && !flag.Changed {
			missing = append(missing, flag.Name)
		}
	})
	if len(missing) > 0 {
		return errors.Errorf("required flag(s) not set: %v", missing)
	}
	return nil
}
