package core

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"

	"depsprobe/internal/types"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "nil", err: nil, want: KindNone},
		{name: "missing manifest", err: missingManifestError("/fx/a.deps.json"), want: KindMissingManifest},
		{name: "invalid manifest", err: invalidManifestError("/app/App.deps.json", errors.New("boom")), want: KindInvalidManifest},
		{name: "invalid manifest without cause", err: invalidManifestError("/app/App.deps.json", nil), want: KindInvalidManifest},
		{name: "unresolved asset", err: unresolvedAssetError(types.ManifestEntry{LibraryName: "Y"}), want: KindUnresolvedRequiredAsset},
		{name: "unresolved runtime", err: unresolvedRuntimeError("libcoreclr.so", []string{"/fx"}), want: KindUnresolvedRequiredAsset},
		{name: "plain error", err: errors.New("boom"), want: KindOther},
		{
			name: "other not found",
			err:  errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("chain file not found"),
			want: KindOther,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, KindOf(tt.err)); diff != "" {
				t.Fatalf("unexpected kind (-want +got):\n%s", diff)
			}
		})
	}
}
