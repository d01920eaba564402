// Blazelint checks Blaze template event maps of Meteor applications.
//
// It reports event maps registered where server code can reach them and
// event handlers whose parameters do not follow the configured names.
//
// Usage:
//
//	# Lint the current project
//	blazelint lint
//
//	# Lint a directory with a custom configuration file
//	blazelint lint ./app --config .blazelint.yaml
//
//	# Re-lint on every change
//	blazelint lint ./app --watch
//
//	# Show version information
//	blazelint version
package main

func main() {
	Execute()
}
