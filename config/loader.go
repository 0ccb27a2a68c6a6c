package config

// Loader reads configuration into a target struct. FileLoader is the only
// implementation shipped; tests substitute their own through WithLoader.
type Loader interface {
	// Load decodes and validates into target.
	Load(target any) error
	// Watch calls callback after every reload triggered by a file change.
	Watch(callback func()) error
}
