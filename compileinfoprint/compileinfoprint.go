// Package compileinfoprint prints the binary's build information to stderr
// when imported for its side effect.
package compileinfoprint

import "github.com/carbocation/segoverlap/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
