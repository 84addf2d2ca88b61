/*
Ollama-file-find inventories the models installed in a local Ollama
model store by reading the manifests directory tree and resolving the
content-addressed blobs each manifest references. It never talks to a
registry and never modifies the store.

Usage:

	ollama-file-find [flags] <command> [command flags]

Commands:

	list
		Lists the installed models. JSON by default.
		    --plain
			One model name per line instead of JSON.
		    --verbose
			Includes layer digests, sizes, total size, and the manifest
			modification time.
		    --blob-paths
			Resolves every digest to its blob path and reports whether the
			blob exists with the declared size.
		    --include-hidden
			Includes models whose path components begin with '.'.

	verify
		Checks every referenced blob for existence and size consistency.
		Exits non-zero if any problem is found.
		    --include-hidden
			Includes models whose path components begin with '.'.

	serve
		Serves the inventory over a read-only HTTP API at /v1/models.
		    --port int
			The port to serve on. Defaults to 8080.
		    --metrics-port int
			Serves prometheus metrics on this port. Zero (the default)
			disables metrics.

	version
		Displays the version.

Common flags:

	--models-dir string
		The models directory. Defaults to the OLLAMA_MODELS environment
		variable, then '<home>/.ollama/models'.
	--log-level string
		Log level: debug, warn, info, or error. Defaults to 'error'.
	--log-file string
		Log to the specified file rather than the console.
	--config-file string
		A yaml file to load configuration values from. Command line values
		take precedence over file values.
*/
package main
