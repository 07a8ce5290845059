package adapters

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"depsprobe/internal/ports"
	"depsprobe/internal/types"
)

const DefaultSBOMNamespace = "https://depsprobe.dev/spdx/apps"

type SBOMWriterAdapter struct {
	Fs            afero.Fs
	NamespaceBase string
}

func NewSBOMWriterAdapter(fs afero.Fs) SBOMWriterAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return SBOMWriterAdapter{Fs: fs, NamespaceBase: DefaultSBOMNamespace}
}

// WriteSBOM records the resolved packages of one app as an SPDX 2.3 JSON
// document at path.
func (a SBOMWriterAdapter) WriteSBOM(path string, appName string, createdAt string, crumbs []types.Breadcrumb) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sbom path is empty")
	}
	if strings.TrimSpace(appName) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("app name is empty")
	}
	fs := a.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create sbom directory").
			WithCause(err)
	}
	ordered := append([]types.Breadcrumb(nil), crumbs...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Name != ordered[j].Name {
			return ordered[i].Name < ordered[j].Name
		}
		return ordered[i].Version < ordered[j].Version
	})
	type spdxCreationInfo struct {
		Created  string   `json:"created"`
		Creators []string `json:"creators"`
	}
	type spdxPackage struct {
		SPDXID           string `json:"SPDXID"`
		Name             string `json:"name"`
		VersionInfo      string `json:"versionInfo"`
		DownloadLocation string `json:"downloadLocation"`
		LicenseConcluded string `json:"licenseConcluded"`
		LicenseDeclared  string `json:"licenseDeclared"`
		Supplier         string `json:"supplier"`
	}
	type spdxRelationship struct {
		SpdxElementID      string `json:"spdxElementId"`
		RelationshipType   string `json:"relationshipType"`
		RelatedSpdxElement string `json:"relatedSpdxElement"`
	}
	created := strings.TrimSpace(createdAt)
	if created == "" {
		created = time.Now().UTC().Format(time.RFC3339)
	}
	payload := struct {
		SPDXVersion       string             `json:"SPDXVersion"`
		DataLicense       string             `json:"DataLicense"`
		SPDXID            string             `json:"SPDXID"`
		Name              string             `json:"name"`
		DocumentNamespace string             `json:"documentNamespace"`
		CreationInfo      spdxCreationInfo   `json:"creationInfo"`
		Packages          []spdxPackage      `json:"packages"`
		Relationships     []spdxRelationship `json:"relationships"`
		DocumentDescribes []string           `json:"documentDescribes"`
	}{
		SPDXVersion:       "SPDX-2.3",
		DataLicense:       "CC0-1.0",
		SPDXID:            "SPDXRef-DOCUMENT",
		Name:              fmt.Sprintf("depsprobe %s", appName),
		DocumentNamespace: fmt.Sprintf("%s/%s/%s", a.namespaceBase(), appName, created),
		CreationInfo: spdxCreationInfo{
			Created:  created,
			Creators: []string{"Tool: depsprobe"},
		},
		Packages:          []spdxPackage{},
		Relationships:     []spdxRelationship{},
		DocumentDescribes: []string{},
	}
	for _, crumb := range ordered {
		spdxID := spdxPackageID(crumb.Name, crumb.Version)
		payload.Packages = append(payload.Packages, spdxPackage{
			SPDXID:           spdxID,
			Name:             crumb.Name,
			VersionInfo:      crumb.Version,
			DownloadLocation: "NOASSERTION",
			LicenseConcluded: "NOASSERTION",
			LicenseDeclared:  "NOASSERTION",
			Supplier:         "NOASSERTION",
		})
		payload.DocumentDescribes = append(payload.DocumentDescribes, spdxID)
		payload.Relationships = append(payload.Relationships, spdxRelationship{
			SpdxElementID:      "SPDXRef-DOCUMENT",
			RelationshipType:   "DESCRIBES",
			RelatedSpdxElement: spdxID,
		})
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal sbom payload").
			WithCause(err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write sbom file").
			WithCause(err)
	}
	return nil
}

func (a SBOMWriterAdapter) namespaceBase() string {
	base := strings.TrimRight(strings.TrimSpace(a.NamespaceBase), "/")
	if base == "" {
		return DefaultSBOMNamespace
	}
	return base
}

func spdxPackageID(name string, version string) string {
	seed := fmt.Sprintf("%s@%s", name, version)
	hash := sha256.Sum256([]byte(seed))
	return "SPDXRef-Package-" + hex.EncodeToString(hash[:8])
}

var _ ports.SBOMPort = SBOMWriterAdapter{}
