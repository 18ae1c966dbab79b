// Command jobhash prints the dedup hash for a job, useful when checking why
// two postings did or did not collapse into one record.
//
// Usage: go run ./scripts/jobhash "Acme" "Backend Engineer" "Remote" "https://acme.com/jobs/123?ref=x"
package main

import (
	"fmt"
	"os"

	"go-jobscout-backend/internal/discovery"
)

func main() {
	if len(os.Args) != 5 {
		fmt.Fprintln(os.Stderr, "usage: jobhash <company> <role> <location> <apply-url>")
		os.Exit(2)
	}

	hash := discovery.GenerateJobHash(os.Args[1], os.Args[2], os.Args[3], os.Args[4])
	fmt.Println(hash)
}
