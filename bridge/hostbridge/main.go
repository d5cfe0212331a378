// Command hostbridge serves host capabilities to a UI core over stdio or loopback HTTP.
package main

import (
	"log"
	"os"

	"github.com/viant/hostbridge/bridge"
	_ "github.com/viant/scy/kms/blowfish"
)

func main() {
	if err := bridge.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
