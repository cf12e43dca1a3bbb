// This program performs administrative tasks for the ledger: it walks
// through a tamper demonstration and benchmarks the cost of mining.
package main

import (
	"github.com/ardanlabs/ledger/app/tooling/admin/commands"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {
	commands.Execute(build)
}
