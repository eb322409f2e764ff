// Command scoringctl inspects and validates scoring-set course manifests
// and queries offline, without a live Adapt runtime.
//
// The CLI supports:
//   - validate: parse and sanity-check a course manifest or query string
//   - status: report registry contents and total-set aggregate for a manifest
//   - query: evaluate a query-language string against a manifest fixture
//   - version: print version information
//   - license: print license and third-party notices
package main

func main() {
	Execute()
}
