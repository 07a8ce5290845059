package types

// FrameworkReference is one shared framework handed over by the framework
// resolution step. References are ordered app-nearest first; the last one
// is the root framework.
type FrameworkReference struct {
	Name    string
	Version string
	Dir     string
}

// FrameworkLevel is one layer of the framework chain. Level 0 is the app.
type FrameworkLevel struct {
	Index    int
	Name     string
	Version  string
	Dir      string
	DepsFile string
	Manifest Manifest
}

// HostContext is the launch description loaded from a chain file.
type HostContext struct {
	AppPath     string
	AppDir      string
	AppDepsFile string
	Frameworks  []FrameworkReference
}
