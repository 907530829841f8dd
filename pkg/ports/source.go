package ports

// ScriptSource defines how the engine retrieves raw script text by file
// name. This decouples the document registry from the storage layer
// (filesystem, memory, embedded assets).
type ScriptSource interface {
	// Load returns the raw bytes of the named script, or an error when the
	// name cannot be served.
	Load(name string) ([]byte, error)

	// List returns the file names available from this source. Used for
	// introspection and validation tooling.
	List() ([]string, error)
}
