// Command takecheck runs the takecheck analyzer.
//
//	go vet -vettool=$(which takecheck) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/rawbytedev/takeref/pkg/takecheck"
)

func main() {
	singlechecker.Main(takecheck.Analyzer)
}
