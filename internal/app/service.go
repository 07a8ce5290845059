package app

import (
	"time"

	"github.com/spf13/afero"

	"depsprobe/internal/adapters"
	"depsprobe/internal/ports"
)

type Service struct {
	Fs           afero.Fs
	Chain        ports.HostContextPort
	FileSystem   ports.FileSystemPort
	OutputReader ports.OutputReaderPort
	SBOMWriter   ports.SBOMPort
	Breadcrumbs  ports.BreadcrumbStorePort
	Metrics      ports.MetricsPort
	Clock        func() time.Time
}

func NewService() Service {
	return NewServiceWithFs(afero.NewOsFs())
}

// NewServiceWithFs wires every filesystem-backed adapter to fs. The
// metrics writer always targets the OS filesystem.
func NewServiceWithFs(fs afero.Fs) Service {
	return Service{
		Fs:           fs,
		Chain:        adapters.NewChainFileAdapter(fs),
		FileSystem:   adapters.NewFileSystemAdapter(fs),
		OutputReader: adapters.NewOutputReaderAdapter(fs),
		SBOMWriter:   adapters.NewSBOMWriterAdapter(fs),
		Breadcrumbs:  adapters.NewBreadcrumbStoreAdapter(fs),
		Metrics:      adapters.NewMetricsTextfileAdapter(),
		Clock:        time.Now,
	}
}

func timeNow(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}
