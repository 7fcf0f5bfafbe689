// Package main provides the entry point for the dumpsift CLI.
//
// dumpsift normalizes credential dump files into canonical, deduplicated
// records and answers email and domain queries against the resulting store.
//
// Usage:
//
//	dumpsift ingest <dump-files...>
//	dumpsift search <email-or-domain>
//	dumpsift stats
//
// See --help for all available options.
package main

// main is the entry point for dumpsift.
func main() {
	Execute()
}
