package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsprobe/internal/types"
)

// ErrorKind classifies resolver failures for callers that need to react
// differently to each of them.
type ErrorKind string

const (
	KindNone                    ErrorKind = ""
	KindMissingManifest         ErrorKind = "missing_manifest"
	KindInvalidManifest         ErrorKind = "invalid_manifest"
	KindUnresolvedRequiredAsset ErrorKind = "unresolved_required_asset"
	KindOther                   ErrorKind = "other"
)

const (
	missingManifestMsg = "A fatal error was encountered, missing dependencies manifest at: "
	invalidManifestMsg = "An error occurred while parsing: "
	missingAssemblyMsg = "An assembly specified in the application dependencies manifest"
	missingRuntimeMsg  = "A fatal error was encountered, unable to locate the native runtime library"
)

func missingManifestError(path string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(missingManifestMsg + path)
}

func invalidManifestError(path string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(invalidManifestMsg + path)
	if cause != nil {
		return builder.WithCause(cause)
	}
	return builder
}

func unresolvedAssetError(entry types.ManifestEntry) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf(
			"%s (%s) was not found:\n  package: '%s', version: '%s'\n  path: '%s'",
			missingAssemblyMsg,
			entry.DepsFile,
			entry.LibraryName,
			entry.LibraryVersion,
			entry.RelativePath,
		))
}

func unresolvedRuntimeError(fileName string, searched []string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s %s in: %s", missingRuntimeMsg, fileName, strings.Join(searched, ", ")))
}

// KindOf maps an error produced by the resolver back to its kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	message := err.Error()
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		message = builder.Msg
	}
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeNotFound:
		if strings.HasPrefix(message, missingManifestMsg) {
			return KindMissingManifest
		}
	case errbuilder.CodeInvalidArgument:
		if strings.HasPrefix(message, invalidManifestMsg) {
			return KindInvalidManifest
		}
	case errbuilder.CodeFailedPrecondition:
		if strings.HasPrefix(message, missingAssemblyMsg) || strings.HasPrefix(message, missingRuntimeMsg) {
			return KindUnresolvedRequiredAsset
		}
	}
	return KindOther
}
