package ports

import "depsprobe/internal/types"

type HostContextPort interface {
	LoadHostContext(path string) (types.HostContext, error)
}
